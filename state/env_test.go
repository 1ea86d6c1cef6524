package state

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"logicss/config"
	"logicss/logical"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}

	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log == nil {
		t.Error("Default logger must be usable before configuration is loaded")
	}
	if env.RunID == uuid.Nil {
		t.Error("Run id not set")
	}
	if env.Mode != logical.Report {
		t.Errorf("Default mode = %v, want report", env.Mode)
	}
	if env.CodePage != nil {
		t.Error("Expected CodePage to be nil")
	}
}

func TestContextWithEnv_UniqueRunID(t *testing.T) {
	a := EnvFromContext(ContextWithEnv(context.Background()))
	b := EnvFromContext(ContextWithEnv(context.Background()))
	if a.RunID == b.RunID {
		t.Error("Each environment must get its own run id")
	}
}

func TestEnvFromContext_PanicsOnMissingEnv(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now()}

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	if env.restoreStdLog == nil {
		t.Fatal("Expected restoreStdLog to be set")
	}
	log.Print("from standard logger")
	env.RestoreStdLog()

	if logs.FilterMessage("from standard logger").Len() != 1 {
		t.Errorf("standard log output was not redirected: %v", logs.All())
	}
	if env.restoreStdLog != nil {
		t.Error("restore function must be cleared")
	}
}

func TestLocalEnv_NilLogger(t *testing.T) {
	env := &LocalEnv{}

	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	// must not panic
	env.RestoreStdLog()
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := range 3 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
	}
}

func TestLocalEnv_Integration(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)

	env.Cfg = &config.Config{Version: 1}
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Mode = logical.Fix
	env.NoDirs = true

	env.RedirectStdLog()
	defer env.RestoreStdLog()

	// same env is seen through context
	again := EnvFromContext(ctx)
	if again.Mode != logical.Fix || !again.NoDirs || again.Cfg == nil {
		t.Errorf("Environment changes not visible through context: %+v", again)
	}
}
