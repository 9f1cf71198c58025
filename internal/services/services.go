package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fitness-planner/internal/config"
	"fitness-planner/internal/plan"
	"fitness-planner/internal/resilience"
)

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// PlanClient generates plans through the standalone plan-service when one is
// configured and falls back to the in-process generator when it is not, or
// when the service is unreachable.
type PlanClient struct {
	baseURL string
	client  *http.Client
	planCB  *resilience.CircuitBreaker
}

func NewPlanClient(cfg *config.Config) *PlanClient {
	return &PlanClient{
		baseURL: strings.TrimRight(cfg.PlanServiceURL, "/"),
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		planCB: resilience.NewCircuitBreaker(3, 10*time.Second),
	}
}

// Generate returns the plan and where it was produced. Profile errors are
// always reported as plan.ErrInvalidInput.
func (s *PlanClient) Generate(ctx context.Context, p plan.Profile) (plan.Plan, string, error) {
	if s.baseURL == "" {
		out, err := plan.Generate(p)
		return out, SourceLocal, err
	}

	if err := ctx.Err(); err != nil {
		return plan.Plan{}, SourceRemote, err
	}

	var (
		out     plan.Plan
		invalid error
		aborted error
	)
	err := s.planCB.Execute(func() error {
		err := s.postJSON(ctx, s.baseURL+"/plans", p, &out)
		switch {
		case errors.Is(err, plan.ErrInvalidInput):
			// the service is healthy, the profile is not
			invalid = err
			return nil
		case ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
			// the caller went away; not a service failure
			aborted = err
			return nil
		}
		return err
	})
	if invalid != nil {
		return plan.Plan{}, SourceRemote, invalid
	}
	if aborted != nil {
		return plan.Plan{}, SourceRemote, aborted
	}
	if err == nil {
		return out, SourceRemote, nil
	}

	slog.Warn("Plan service fallback", "error", err)
	local, lerr := plan.Generate(p)
	return local, SourceLocal, lerr
}

func (s *PlanClient) postJSON(ctx context.Context, url string, body, target interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return resilience.Permanent(err)
	}

	return resilience.Retry(ctx, 3, 500*time.Millisecond, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return resilience.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}

		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
			var e struct {
				Error string `json:"error"`
			}
			json.NewDecoder(resp.Body).Decode(&e)
			return resilience.Permanent(fmt.Errorf("%w: %s", plan.ErrInvalidInput, strings.TrimPrefix(e.Error, plan.ErrInvalidInput.Error()+": ")))
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return resilience.Permanent(fmt.Errorf("bad status code: %d", resp.StatusCode))
		}

		return json.NewDecoder(resp.Body).Decode(target)
	})
}
