package compose

import (
	"context"
)

type fakeRunner struct {
	dir       string
	name      string
	args      []string
	err       error
	outputErr error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.dir = dir
	f.name = name
	f.args = append([]string{}, args...)
	return f.err
}

func (f *fakeRunner) RunOutput(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.dir = dir
	f.name = name
	f.args = append([]string{}, args...)
	return nil, f.outputErr
}
