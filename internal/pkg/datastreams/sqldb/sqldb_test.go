package sqldb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/msg"
	"gotest.tools/v3/assert"
)

func newHandler() Handler {
	pid, err := uuid.NewUUID()
	if err != nil {
		panic(err)
	}
	h, err := New("../../../../config/sqldb.json", msg.NewPubSub(pid))
	if err != nil {
		panic(err)
	}
	return h
}

func TestReadConfig(t *testing.T) {
	h := newHandler()
	assert.Equal(t, h.config.Port, 3306)
	assert.Equal(t, h.config.Server, "localhost")
	assert.Equal(t, h.config.Database, "esm")
}

func TestNewMissingConfig(t *testing.T) {
	pid, err := uuid.NewUUID()
	assert.NilError(t, err)
	_, err = New("./no_such_config.json", msg.NewPubSub(pid))
	assert.Assert(t, err != nil)
}

func TestDB(t *testing.T) {
	h := newHandler()
	db, err := h.DB()
	assert.NilError(t, err)
	db.Close()
}
