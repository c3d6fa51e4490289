package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spell/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestBecause(t *testing.T) {
	cause := errors.New("disk full")

	err := zerr.With(zerr.Wrap(domain.Because(domain.ErrTaskExecutionFailed, cause), "link"), "task", "link")

	assert.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "link: task execution failed: disk full", err.Error())
	assert.Equal(t, domain.ErrCommandFailed, domain.Because(domain.ErrCommandFailed, nil))
}

func TestRegistry_Get_NamesTask(t *testing.T) {
	_, err := domain.NewRegistry().Get("ghost")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, "ghost: task not found", err.Error())
}
