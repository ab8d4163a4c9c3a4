// Package health reports the state of the portal's backing services.
package health

import (
	"context"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/asyncx"
	"github.com/Abraxas-365/supplierportal/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// Probe checks one dependency
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

type Report struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

type Checker struct {
	probes  []Probe
	timeout time.Duration
	now     func() time.Time
}

// NewChecker runs each probe with its own timeout
func NewChecker(timeout time.Duration, probes ...Probe) *Checker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Checker{probes: probes, timeout: timeout, now: time.Now}
}

func (c *Checker) Run(ctx context.Context) Report {
	fns := make([]func(context.Context) (struct{}, error), len(c.probes))
	for i, p := range c.probes {
		fns[i] = func(ctx context.Context) (struct{}, error) {
			return asyncx.WithTimeout(ctx, c.timeout, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, p.Check(ctx)
			})
		}
	}

	report := Report{Status: StatusOK, Checks: make(map[string]string, len(c.probes)), Timestamp: c.now().UTC()}
	for i, res := range asyncx.Settle(ctx, fns...) {
		if res.OK() {
			report.Checks[c.probes[i].Name] = StatusOK
			continue
		}
		report.Status = StatusDegraded
		report.Checks[c.probes[i].Name] = StatusDegraded
		logx.WithContext(ctx).WithField("probe", c.probes[i].Name).WithError(res.Err).Warn("Health probe failed")
	}
	return report
}

// Handler responds 200 when every probe passes and 503 otherwise
func (c *Checker) Handler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		report := c.Run(ctx.UserContext())
		status := fiber.StatusOK
		if report.Status != StatusOK {
			status = fiber.StatusServiceUnavailable
		}
		return ctx.Status(status).JSON(report)
	}
}
