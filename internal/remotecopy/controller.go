// Package remotecopy binds to a delegation container and turns activations
// of copy triggers into one GET, one clipboard write and at most one
// notification.
package remotecopy

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"casccopy/internal/clipboard"
	"casccopy/internal/config"
	"casccopy/internal/errors"
	"casccopy/internal/fetch"
	"casccopy/internal/log"
	"casccopy/internal/notify"
	"casccopy/internal/trigger"
)

// Outcome is how a copy request settled
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeMissingURL
	OutcomeNetworkError
	OutcomeHTTPError
	OutcomeEmptyContent
	OutcomeClipboardUnavailable
	OutcomeCopied
)

// String returns the outcome name used in logs and the UI
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeMissingURL:
		return "no url"
	case OutcomeNetworkError:
		return "network error"
	case OutcomeHTTPError:
		return "http error"
	case OutcomeEmptyContent:
		return "empty"
	case OutcomeClipboardUnavailable:
		return "no clipboard"
	case OutcomeCopied:
		return "copied"
	default:
		return "unknown"
	}
}

// Request is one in-flight fetch
type Request struct {
	ID      string
	Trigger trigger.Trigger
	Started time.Time
}

// Result describes a settled request
type Result struct {
	Request  Request
	Outcome  Outcome
	Err      error
	Status   int
	Bytes    int
	Notified bool
	Duration time.Duration
}

// Copied reports whether the clipboard now holds the fetched content
func (r Result) Copied() bool {
	return r.Outcome == OutcomeCopied
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// OnSettled registers a callback invoked once per settled request. It runs on
// the request's goroutine.
func OnSettled(fn func(Result)) Option {
	return func(c *Controller) {
		c.onSettled = fn
	}
}

// WithDefaultMessages fills the messages a trigger leaves unset
func WithDefaultMessages(m config.Messages) Option {
	return func(c *Controller) {
		c.messages = m
	}
}

// WithRequestIDs replaces the request id generator
func WithRequestIDs(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Controller handles copy activations
type Controller struct {
	getter   fetch.Getter
	writer   clipboard.Writer
	notifier notify.Notifier
	logger   *log.Logger

	messages  config.Messages
	onSettled func(Result)
	newID     func() string

	group    errgroup.Group
	inFlight atomic.Int64
}

// New creates a controller. A nil notifier discards notifications.
func New(getter fetch.Getter, writer clipboard.Writer, notifier notify.Notifier, opts ...Option) *Controller {
	if notifier == nil {
		notifier = notify.Discard
	}

	c := &Controller{
		getter:   getter,
		writer:   writer,
		notifier: notifier,
		logger:   log.Nop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach registers the controller's activation listener on container. A nil
// container is ignored. Repeated calls for the same container register
// nothing new.
func (c *Controller) Attach(container *trigger.Container) {
	if container == nil {
		return
	}

	added := container.AddListener(c, func(ctx context.Context, ev *trigger.Event) {
		c.handleActivation(ctx, ev, container)
	})
	if added {
		c.logger.Debug("attached to container", map[string]any{
			"container": container.ID(),
			"triggers":  container.Len(),
		})
	}
}

// handleActivation resolves the activation target and, for a trigger with a
// URL, starts the copy in the background. It reports whether the activation
// belonged to a trigger.
func (c *Controller) handleActivation(ctx context.Context, ev *trigger.Event, container *trigger.Container) bool {
	t, ok := container.Resolve(ev.Target)
	if !ok {
		return false
	}

	ev.StopPropagation()
	ev.PreventDefault()

	t = t.WithDefaults(c.messages)
	if !t.HasURL() {
		c.settle(c.missingURL(t))
		return true
	}

	req := c.newRequest(t)
	c.inFlight.Add(1)
	c.group.Go(func() error {
		res := c.run(ctx, req)
		c.inFlight.Add(-1)
		c.settle(res)
		return nil
	})
	return true
}

// Copy runs one copy request for t and blocks until it settles
func (c *Controller) Copy(ctx context.Context, t trigger.Trigger) Result {
	t = t.WithDefaults(c.messages)
	if !t.HasURL() {
		res := c.missingURL(t)
		c.settle(res)
		return res
	}

	c.inFlight.Add(1)
	res := c.run(ctx, c.newRequest(t))
	c.inFlight.Add(-1)

	c.settle(res)
	return res
}

// Wait blocks until every background request has settled
func (c *Controller) Wait() {
	_ = c.group.Wait()
}

// InFlight returns the number of unsettled requests. A request no longer
// counts once its OnSettled callback runs.
func (c *Controller) InFlight() int {
	return int(c.inFlight.Load())
}

func (c *Controller) newRequest(t trigger.Trigger) Request {
	return Request{ID: c.newID(), Trigger: t, Started: time.Now()}
}

func (c *Controller) missingURL(t trigger.Trigger) Result {
	return Result{
		Request: Request{Trigger: t},
		Outcome: OutcomeMissingURL,
		Err:     errors.ErrMissingURL,
	}
}

func (c *Controller) run(ctx context.Context, req Request) Result {
	t := req.Trigger
	res := Result{Request: req}

	c.requestLogger(req).Debug("copy request started", nil)

	resp, err := c.getter.Get(ctx, t.URL)
	res.Duration = time.Since(req.Started)
	if err != nil {
		res.Outcome = OutcomeNetworkError
		res.Err = err
		res.Notified = c.notify(t.ErrorMessage, notify.SeverityError)
		return res
	}

	res.Status = resp.StatusCode
	if !resp.OK() {
		res.Outcome = OutcomeHTTPError
		res.Err = errors.NewHTTPError(t.URL, resp.StatusCode, resp.StatusText)
		if t.ErrorMessage != "" {
			res.Notified = c.notify(fmt.Sprintf("%s (%s)", t.ErrorMessage, resp.StatusText), notify.SeverityError)
		}
		return res
	}

	res.Bytes = len(resp.Body)
	content := string(resp.Body)
	if strings.TrimSpace(content) == "" {
		res.Outcome = OutcomeEmptyContent
		res.Err = errors.NewEmptyContentError(t.URL)
		res.Notified = c.notify(t.EmptyFileMessage, notify.SeverityError)
		return res
	}

	if err := c.writer.Write(ctx, content); err != nil {
		res.Outcome = OutcomeClipboardUnavailable
		res.Err = errors.WrapClipboardError(err)
		msg := t.ClipboardErrorMessage
		if msg == "" {
			msg = t.ErrorMessage
		}
		res.Notified = c.notify(msg, notify.SeverityError)
		return res
	}

	res.Outcome = OutcomeCopied
	res.Notified = c.notify(t.SuccessMessage, notify.SeverityOK)
	return res
}

// notify shows message unless it is empty
func (c *Controller) notify(message string, severity notify.Severity) bool {
	if message == "" {
		return false
	}
	c.notifier.Show(message, severity)
	return true
}

// requestLogger carries the fields identifying one request
func (c *Controller) requestLogger(req Request) *log.Logger {
	fields := map[string]any{"trigger": req.Trigger.ID}
	if req.ID != "" {
		fields["request_id"] = req.ID
		fields["url"] = req.Trigger.URL
	}
	return c.logger.With(fields)
}

func (c *Controller) settle(res Result) {
	logger := c.requestLogger(res.Request)
	fields := map[string]any{
		"outcome":  res.Outcome.String(),
		"notified": res.Notified,
	}
	if res.Request.ID != "" {
		fields["duration"] = res.Duration.String()
	}
	if res.Status != 0 {
		fields["status"] = res.Status
	}
	if res.Bytes > 0 {
		fields["size"] = humanize.Bytes(uint64(res.Bytes))
	}

	switch res.Outcome {
	case OutcomeCopied:
		logger.Info("copy request settled", fields)
	case OutcomeMissingURL:
		logger.Debug("trigger has no url, nothing to fetch", fields)
	default:
		fields["error"] = res.Err.Error()
		logger.Warn("copy request failed", fields)
	}

	if c.onSettled != nil {
		c.onSettled(res)
	}
}
