package exemption

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// WaitFunc is the throttle clock. Tests inject a recorder instead of
// time.Sleep.
type WaitFunc func(d time.Duration)

// BatchConfig controls batch partitioning and the mandatory throttling
// between provider writes. Only the magnitudes are configurable; the
// throttling itself is required to avoid provider-side rate rejection.
type BatchConfig struct {
	BatchSize       int
	InterBatchDelay time.Duration
	InterCallDelay  time.Duration
	Wait            WaitFunc
	Now             func() time.Time
}

func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		BatchSize:       5,
		InterBatchDelay: 2 * time.Second,
		InterCallDelay:  500 * time.Millisecond,
		Wait:            time.Sleep,
		Now:             time.Now,
	}
}

func (c BatchConfig) withDefaults() BatchConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = 5
	}
	if c.Wait == nil {
		c.Wait = time.Sleep
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

const (
	waiverDescription    = "Exemption created via policy-atlas: risk accepted, requires periodic review"
	mitigatedDescription = "Exemption created via policy-atlas: risk addressed through compensating controls"
)

// Creator performs rate-limited, idempotent bulk creation of exemptions for
// a resources x assignments cross product.
type Creator struct {
	store Store
	repo  *Repository
}

func NewCreator(store Store) *Creator {
	return &Creator{
		store: store,
		repo:  NewRepository(store),
	}
}

// Run processes every (resource, assignment) pair in a stable nested order:
// resources in supply order partitioned into batches, assignments per
// resource in locator order. A failed pair never aborts the run; it is
// captured and the next pair proceeds. At completion
// Created + Skipped + Failed equals len(resources) * len(assignments).
func (c *Creator) Run(
	ctx context.Context,
	resources []domain.TaggedResource,
	assignments []domain.PolicyAssignment,
	category domain.ExemptionCategory,
	expiresOn time.Time,
	cfg BatchConfig,
) domain.BatchResult {
	cfg = cfg.withDefaults()
	logger := zerolog.Ctx(ctx)

	result := domain.BatchResult{
		TotalOperations: len(resources) * len(assignments),
	}

	batches := partition(resources, cfg.BatchSize)
	for batchIndex, batch := range batches {
		logger.Info().
			Int("batch", batchIndex+1).
			Int("batches", len(batches)).
			Int("resources", len(batch)).
			Msg("processing batch")

		for _, resource := range batch {
			outcome := c.processResource(ctx, resource, assignments, category, expiresOn, cfg)
			result = combine(result, outcome)
		}

		if batchIndex < len(batches)-1 {
			cfg.Wait(cfg.InterBatchDelay)
		}
	}
	return result
}

// processResource handles all assignment pairs for one resource and returns
// an immutable outcome record for the caller to fold in. Existing exemptions
// are fetched once per resource, not once per pair.
func (c *Creator) processResource(
	ctx context.Context,
	resource domain.TaggedResource,
	assignments []domain.PolicyAssignment,
	category domain.ExemptionCategory,
	expiresOn time.Time,
	cfg BatchConfig,
) domain.BatchResult {
	logger := zerolog.Ctx(ctx)
	existing := c.repo.ExistingFor(ctx, resource.ID)

	var outcome domain.BatchResult
	for _, target := range assignments {
		if isExempted(existing, target.ID) {
			logger.Debug().
				Str("resource", resource.Name).
				Str("assignment", target.Name).
				Msg("exemption already exists, skipping")
			outcome.Skipped++
			continue
		}

		if err := c.createOne(ctx, resource, target, category, expiresOn, cfg.Now()); err != nil {
			logger.Error().Err(err).
				Str("resource", resource.Name).
				Str("assignment", target.Name).
				Msg("exemption creation failed")
			outcome.Failed++
			outcome.Failures = append(outcome.Failures, domain.PairFailure{
				ResourceID:   resource.ID,
				AssignmentID: target.ID,
				Reason:       err.Error(),
			})
		} else {
			outcome.Created++
		}
		cfg.Wait(cfg.InterCallDelay)
	}
	return outcome
}

func (c *Creator) createOne(
	ctx context.Context,
	resource domain.TaggedResource,
	target domain.PolicyAssignment,
	category domain.ExemptionCategory,
	expiresOn time.Time,
	now time.Time,
) error {
	// The assignment may have been removed since discovery; re-resolve it so
	// a stale id fails this pair instead of producing a dangling exemption.
	resolved, err := c.store.GetAssignmentByID(ctx, target.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve assignment %q: %w", target.ID, err)
	}

	exemption := domain.Exemption{
		Name:               exemptionName(resource.Name, now),
		Scope:              resource.ID,
		PolicyAssignmentID: resolved.ID,
		Category:           category,
		DisplayName:        fmt.Sprintf("Defender exemption for %s", resource.Name),
		Description:        describe(category),
		ExpiresOn:          expiresOn,
	}
	if err := c.store.Create(ctx, exemption); err != nil {
		return fmt.Errorf("failed to create exemption for %q: %w", resource.ID, err)
	}
	return nil
}

// exemptionName is deterministic for a resource and day, so a re-run on the
// same day targets the same provider-side record. Exemption names are capped
// at 64 characters by ARM.
func exemptionName(resourceName string, now time.Time) string {
	name := fmt.Sprintf("exempt-%s-%s", strings.ToLower(resourceName), now.Format("20060102"))
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}

func describe(category domain.ExemptionCategory) string {
	if category == domain.CategoryWaiver {
		return waiverDescription
	}
	return mitigatedDescription
}

func isExempted(existing []domain.Exemption, assignmentID string) bool {
	for _, e := range existing {
		if strings.EqualFold(e.PolicyAssignmentID, assignmentID) {
			return true
		}
	}
	return false
}

func partition(resources []domain.TaggedResource, size int) [][]domain.TaggedResource {
	var batches [][]domain.TaggedResource
	for start := 0; start < len(resources); start += size {
		end := start + size
		if end > len(resources) {
			end = len(resources)
		}
		batches = append(batches, resources[start:end])
	}
	return batches
}

func combine(total, outcome domain.BatchResult) domain.BatchResult {
	total.Created += outcome.Created
	total.Skipped += outcome.Skipped
	total.Failed += outcome.Failed
	total.Failures = append(total.Failures, outcome.Failures...)
	return total
}
