package main

import (
	"context"
	"testing"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/seed"
)

type recordingRunner struct {
	called  bool
	fixture *seed.Fixture
}

func (r *recordingRunner) run(ctx context.Context, configPath string, f *seed.Fixture) (seed.Result, error) {
	r.called = true
	r.fixture = f
	return seed.Result{Employees: int64(len(f.Employees))}, nil
}

func TestFixturesCommand(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	cmd := newRootCmdWithRunner(runner.run)
	cmd.SetArgs([]string{"fixtures", "--file", "../../assets/seeds/careerpath.yaml", "--fake", "2"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !runner.called {
		t.Fatal("runner was not called")
	}
	if got := len(runner.fixture.Employees); got != 10 {
		t.Fatalf("expected 10 employees, got %d", got)
	}
	if len(runner.fixture.Roles) == 0 {
		t.Fatal("expected bundled roles")
	}
}

func TestFakeCommand(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	cmd := newRootCmdWithRunner(runner.run)
	cmd.SetArgs([]string{"fake", "-n", "4"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got := len(runner.fixture.Employees); got != 4 {
		t.Fatalf("expected 4 employees, got %d", got)
	}
}

func TestFakeCommand_RejectsNonPositiveCount(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	cmd := newRootCmdWithRunner(runner.run)
	cmd.SetArgs([]string{"fake", "--count", "0"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for zero count")
	}
	if runner.called {
		t.Fatal("runner must not be called")
	}
}

func TestFixturesCommand_MissingFile(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	cmd := newRootCmdWithRunner(runner.run)
	cmd.SetArgs([]string{"fixtures", "--file", "testdata/missing.yaml"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing fixture file")
	}
	if runner.called {
		t.Fatal("runner must not be called")
	}
}
