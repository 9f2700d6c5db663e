// Package domain models the terrain grid and the per-cycle data flowing
// through the slope-risk engine.
//
// # Units
//
// The engine uses a consistent kN-m-kPa system:
//
//	cohesion (c):          kPa (kN/m²)
//	friction angle (phi):  degrees
//	unit weight (gamma):   kN/m³
//	soil depth (z):        m
//	sat. conductivity:     m/s
//	rainfall intensity:    mm/hr
//	stresses:              kPa
//
// Coordinates are WGS-84 degrees treated as a planar space; station-to-cell
// distances are squared lat/lon deltas, which is adequate at the few-km
// extent of a single monitored grid and is what the fusion weighting expects.
//
// # Factor of Safety
//
// FoS is the ratio of resisting to driving shear stress on an infinite slope:
// below 1 means failure, above 1 stability. The engine clamps FoS to [0, 10];
// 10 marks flat or rock-solid ground where the model saturates rather than
// reporting unbounded safety margins.
//
// # Saturation state
//
// Per-cell soil saturation in [0.05, 1.0] is the only state that persists
// across simulation cycles. It is owned exclusively by the saturation tracker
// (package hydro); everything else computed in a cycle is derived and
// discarded when the cycle ends.
//
// # Sensor faults
//
// Rain gauges fail loudly: a stuck transmitter reports a sentinel far outside
// physical range (9999 mm/hr is common in the source feeds). The anomaly
// filter (package fusion) rejects these by median deviation before readings
// reach the spatial model.
package domain
