package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-lews/risk-engine/internal/domain"
)

func TestSerializeAlert(t *testing.T) {
	alert := domain.HotspotAlert{
		CellIndex: 1523,
		Lat:       31.1042,
		Lon:       77.1733,
		Risk:      0.8721,
		FoS:       0.8432,
		Message:   "ALERT: High Landslide Risk (0.87). Loc:31.1042,77.1733 FoS:0.84. AC:Immediate",
	}

	msg, err := serializeAlert(alert)
	require.NoError(t, err)

	assert.Equal(t, []byte("1523"), msg.Key, "keyed by cell index for stable partitioning")

	var decoded domain.HotspotAlert
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, alert, decoded)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "risk", msg.Headers[0].Key)
	assert.Equal(t, []byte("0.8721"), msg.Headers[0].Value)
	assert.Equal(t, "fos", msg.Headers[1].Key)
	assert.Equal(t, []byte("0.8432"), msg.Headers[1].Value)
}

func TestPublishAlerts_EmptyBatchIsNoOp(t *testing.T) {
	// No writer needed: an empty cycle must not touch the broker at all.
	p := &Publisher{}

	assert.NoError(t, p.PublishAlerts(context.Background(), nil))
	assert.NoError(t, p.PublishAlerts(context.Background(), []domain.HotspotAlert{}))
}
