package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/application/dto"
)

func TestDate_AceptaFechaCortaYRFC3339(t *testing.T) {
	var in struct {
		A dto.Date  `json:"a"`
		B *dto.Date `json:"b"`
		C *dto.Date `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a":"2024-03-21","b":"2024-03-21T08:30:00Z","c":null}`), &in)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC), in.A.Time)
	require.NotNil(t, in.B)
	assert.Equal(t, 8, in.B.Hour())
	assert.Nil(t, in.C.Ptr())
}

func TestDate_FormatoInvalido(t *testing.T) {
	var d dto.Date
	assert.Error(t, json.Unmarshal([]byte(`"21/03/2024"`), &d))
}
