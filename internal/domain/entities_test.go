package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_DecodesBackendShape(t *testing.T) {
	raw := `{
		"id": 9,
		"titulo": "Llamar",
		"descripcion": null,
		"contacto_id": 2,
		"proyecto_id": null,
		"fecha_vencimiento": "2025-01-15T10:00:00",
		"prioridad": "alta",
		"estado": "en_seguimiento",
		"canal_notificacion": "telegram",
		"contactos": {"nombre": "Juan Pérez", "empresa": "Acme"}
	}`
	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	assert.Equal(t, int64(9), task.ID)
	assert.Nil(t, task.Description)
	assert.Equal(t, int64(2), *task.ContactID)
	require.NotNil(t, task.DueAt)
	assert.Equal(t, 15, task.DueAt.Day())
	assert.Equal(t, StatusFollowingUp, task.Status)
	assert.Equal(t, "Juan Pérez", task.ContactName())
}

func TestTimestamp_AcceptedFormats(t *testing.T) {
	for _, s := range []string{
		"2025-01-15T10:00:00Z",
		"2025-01-15T10:00:00.123456",
		"2025-01-15T10:00:00+02:00",
		"2025-01-15",
	} {
		_, err := ParseTimestamp(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseTimestamp("15/01/2025")
	assert.Error(t, err)

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestPlace_SkipsUnknownStatus(t *testing.T) {
	snap := Place([]Task{
		{ID: 1, Status: StatusPending},
		{ID: 2, Status: "archivada"},
		{ID: 3, Status: StatusCompleted},
		{ID: 4, Status: StatusPending},
	})
	assert.Len(t, snap, 4)
	assert.Len(t, snap.Tasks(StatusPending), 2)
	assert.Equal(t, int64(4), snap.Tasks(StatusPending)[1].ID)
	assert.Empty(t, snap.Tasks(StatusFollowingUp))
	assert.Nil(t, snap.Tasks("archivada"))
}

func TestPlans(t *testing.T) {
	p, ok := FindPlan("professional")
	require.True(t, ok)
	assert.Equal(t, 9, p.Price(false))
	assert.Equal(t, 7, p.Price(true))
	assert.Equal(t, 84, p.AnnualTotal())

	_, ok = FindPlan("enterprise")
	assert.False(t, ok)
}
