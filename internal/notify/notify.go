// Package notify is the fire-and-forget notification boundary used for
// add-to-cart, order-placed and calorie-alert events.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

type Sink interface {
	Notify(ctx context.Context, title, body string) error
}

// Func adapts a plain function to the Sink interface.
type Func func(ctx context.Context, title, body string) error

func (f Func) Notify(ctx context.Context, title, body string) error {
	return f(ctx, title, body)
}

// Fallback delivers through the primary sink and invokes the in-app callback
// when delivery fails. The failure itself is not propagated.
type Fallback struct {
	log     *slog.Logger
	primary Sink
	onFail  func(title, body string)
}

func NewFallback(log *slog.Logger, primary Sink, onFail func(title, body string)) *Fallback {
	return &Fallback{log: log, primary: primary, onFail: onFail}
}

func (f *Fallback) Notify(ctx context.Context, title, body string) error {
	if err := f.primary.Notify(ctx, title, body); err != nil {
		f.log.Warn("notification delivery failed, falling back in-app", "title", title, "err", err)
		if f.onFail != nil {
			f.onFail(title, body)
		}
	}
	return nil
}

// InApp records messages for an in-app banner and serves as the test double.
type InApp struct {
	mu       sync.Mutex
	messages []Message
}

type Message struct {
	Title string
	Body  string
}

func NewInApp() *InApp { return &InApp{} }

func (s *InApp) Notify(ctx context.Context, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Title: title, Body: body})
	return nil
}

func (s *InApp) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
