package server

import (
	"context"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
)

// loop runs every task on one goroutine until Close.
func (s *Server) loop() {
	defer close(s.stopped)
	defer reactive.ReleaseGoroutine()

	for {
		select {
		case task := <-s.tasks:
			s.exec(task)
		case <-s.done:
			return
		}
	}
}

func (s *Server) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	task()
}

// dispatch runs fn on the event loop, then settles the tree and pushes the
// new body to live clients.
func (s *Server) dispatch(ctx context.Context, fn func()) error {
	return s.dispatchRaw(ctx, func() {
		fn()
		s.settle(ctx)
	})
}

// dispatchRaw runs fn on the event loop and waits for it.
func (s *Server) dispatchRaw(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	ok := false
	task := func() {
		defer close(finished)
		fn()
		ok = true
	}

	select {
	case s.tasks <- task:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once queued the task always runs; wait for it even if ctx ends so
	// results written by fn are not raced.
	<-finished
	if !ok {
		return errors.New("D012").WithDetail("task panicked")
	}
	return nil
}

// settle runs update passes and broadcasts a changed body. Loop only.
func (s *Server) settle(ctx context.Context) {
	_, span := s.tracer.Start(ctx, "declarative.update")
	defer span.End()

	passes, settled := s.tree.Settle()
	span.SetAttributes(
		attribute.Int("declarative.passes", passes),
		attribute.Int("declarative.renders", s.tree.Renders()),
	)
	if !settled {
		s.logger.Warn("update did not settle", "passes", passes)
		span.SetStatus(codes.Error, "update did not settle")
	}

	html, err := s.tree.HTML()
	if err != nil {
		s.logger.Error("render failed", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return
	}
	if html != s.lastSent {
		s.lastSent = html
		s.broadcast(html)
	}
}
