package state

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logicss/logical"
)

// newLocalEnv creates environment usable before configuration is loaded:
// nop logger, report mode, fresh run id.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Log:   zap.NewNop(),
		RunID: uuid.New(),
		Mode:  logical.Report,
		start: time.Now(),
	}
}
