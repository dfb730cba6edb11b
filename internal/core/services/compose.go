package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
	"github.com/custodia-labs/promptsmith/internal/engine"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

// Ensure ComposeService implements the interface.
var _ driving.ComposeService = (*ComposeService)(nil)

// chainHistoryLimit bounds the history a chain is trained on.
const chainHistoryLimit = 500

// ComposeService composes prompts from stored packs.
type ComposeService struct {
	packStore        driven.PackStore
	compositionStore driven.CompositionStore
	settings         driving.SettingsService
	now              func() time.Time
}

// NewComposeService creates a compose service. settings may be nil, in
// which case defaults apply.
func NewComposeService(
	packStore driven.PackStore,
	compositionStore driven.CompositionStore,
	settings driving.SettingsService,
) *ComposeService {
	return &ComposeService{
		packStore:        packStore,
		compositionStore: compositionStore,
		settings:         settings,
		now:              time.Now,
	}
}

func (s *ComposeService) composeSettings() domain.ComposeSettings {
	if s.settings == nil {
		return domain.DefaultSettings().Compose
	}
	st, err := s.settings.Get()
	if err != nil {
		logger.Warn("settings unavailable, using defaults: %v", err)
		return domain.DefaultSettings().Compose
	}
	return st.Compose
}

func (s *ComposeService) pack(ctx context.Context, id string) (*domain.Pack, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: pack id is required", domain.ErrInvalidInput)
	}
	p, err := s.packStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", id, err)
	}
	return p, nil
}

// seedFrom returns *seed, or a fresh random seed.
func seedFrom(seed *uint64) (uint64, error) {
	if seed != nil {
		return *seed, nil
	}
	return engine.NewSeed()
}

// Compose fills and expands a pack template.
func (s *ComposeService) Compose(ctx context.Context, req driving.ComposeRequest) (*domain.Composition, error) {
	pack, err := s.pack(ctx, req.PackID)
	if err != nil {
		return nil, err
	}
	template, err := pack.TemplateByName(req.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, req.Template)
	}

	cfg := s.composeSettings()
	mode := req.Mode
	if mode == "" {
		mode = cfg.FillMode
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: fill mode %q", domain.ErrInvalidInput, mode)
	}

	if req.Strict {
		if err := checkSelections(pack, req.Selections); err != nil {
			return nil, err
		}
	}

	seed, err := seedFrom(req.Seed)
	if err != nil {
		return nil, err
	}
	composer := engine.Composer{
		Rand:  engine.NewRand(seed),
		Alpha: cfg.Alpha,
		Limit: cfg.RecursionLimit,
		Mode:  mode,
	}
	res := composer.ComposeTemplate(pack, template, req.Selections)

	c := &domain.Composition{
		ID:         uuid.New().String(),
		PackID:     pack.ID,
		Template:   req.Template,
		Prompt:     res.Prompt,
		Seed:       seed,
		Selections: res.Resolved,
		Tags:       res.Tags,
		CreatedAt:  s.now(),
	}
	if req.Save && s.compositionStore != nil {
		if err := s.compositionStore.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("save composition: %w", err)
		}
		logger.Debug("saved composition %s", c.ID)
	}
	return c, nil
}

// checkSelections rejects selections of unknown slots and selections that
// exclude each other.
func checkSelections(pack *domain.Pack, sel domain.Selections) error {
	ds := engine.DatasetFromPack(pack)
	var unknown []string
	for key := range sel {
		if _, isSlot := pack.Slot(key); !isSlot && !ds.Has(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown slots %s", domain.ErrInvalidInput, strings.Join(unknown, ", "))
	}

	conflicts := engine.NewConstraintGraph(ds).Conflicts(sel)
	if len(conflicts) == 0 {
		return nil
	}
	parts := make([]string, len(conflicts))
	for i, c := range conflicts {
		parts[i] = fmt.Sprintf("%s=%s excluded by %s=%s", c.Selected.Slot, c.Selected.Value, c.By.Slot, c.By.Value)
	}
	return fmt.Errorf("%w: %w: %s", domain.ErrInvalidInput, domain.ErrSelectionConflict, strings.Join(parts, "; "))
}

// Expand resolves a raw template against a pack's dataset.
func (s *ComposeService) Expand(ctx context.Context, req driving.ExpandRequest) (*driving.ExpandResult, error) {
	pack, err := s.pack(ctx, req.PackID)
	if err != nil {
		return nil, err
	}
	seed, err := seedFrom(req.Seed)
	if err != nil {
		return nil, err
	}

	cfg := s.composeSettings()
	limit := req.Limit
	if limit <= 0 {
		limit = cfg.RecursionLimit
	}
	e := engine.Expander{Rand: engine.NewRand(seed), Alpha: cfg.Alpha, Limit: limit}
	return &driving.ExpandResult{
		Text: e.Expand(req.Template, engine.DatasetFromPack(pack)),
		Seed: seed,
	}, nil
}

// Sample draws one option from a slot.
func (s *ComposeService) Sample(ctx context.Context, packID, slotID string, seed *uint64) (*driving.SampleResult, error) {
	pack, err := s.pack(ctx, packID)
	if err != nil {
		return nil, err
	}
	options, ok := engine.DatasetFromPack(pack)[slotID]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}
	sd, err := seedFrom(seed)
	if err != nil {
		return nil, err
	}

	alpha := s.composeSettings().Alpha
	weights := engine.Weights(options, alpha)
	dist := make([]driving.OptionWeight, len(weights))
	for i, w := range weights {
		dist[i] = driving.OptionWeight{Value: w.Option.Value, Rank: w.Rank, Probability: w.Probability}
	}
	return &driving.SampleResult{
		Option:       engine.Sample(engine.NewRand(sd), options, alpha),
		Seed:         sd,
		Distribution: dist,
	}, nil
}

// Lookup finds the slot whose option best matches text.
func (s *ComposeService) Lookup(ctx context.Context, packID, text string) (*driving.LookupResult, error) {
	pack, err := s.pack(ctx, packID)
	if err != nil {
		return nil, err
	}
	value, slot, ok := engine.BuildIndex(engine.DatasetFromPack(pack)).Match(text)
	if !ok {
		return &driving.LookupResult{}, nil
	}
	return &driving.LookupResult{Found: true, SlotID: slot, Value: value}, nil
}

// Disabled computes the options disabled by selections.
func (s *ComposeService) Disabled(ctx context.Context, packID string, selections domain.Selections) (*driving.DisabledResult, error) {
	pack, err := s.pack(ctx, packID)
	if err != nil {
		return nil, err
	}
	graph := engine.NewConstraintGraph(engine.DatasetFromPack(pack))
	transitive := s.composeSettings().Transitive

	var set engine.DisabledSet
	if transitive {
		set = graph.DisabledTransitive(selections)
	} else {
		set = graph.Disabled(selections)
	}

	res := &driving.DisabledResult{Disabled: set.Map(), Transitive: transitive}
	for _, c := range graph.Conflicts(selections) {
		res.Conflicts = append(res.Conflicts, driving.SelectionConflict{
			SlotID:   c.Selected.Slot,
			Value:    c.Selected.Value,
			BySlotID: c.By.Slot,
			ByValue:  c.By.Value,
		})
	}
	return res, nil
}

// Chain generates a value sequence from a Markov chain trained on the
// pack's composition history.
func (s *ComposeService) Chain(ctx context.Context, packID string, maxLength int, seed *uint64) ([]string, error) {
	pack, err := s.pack(ctx, packID)
	if err != nil {
		return nil, err
	}
	if s.compositionStore == nil {
		return nil, fmt.Errorf("%w: no composition history", domain.ErrNotFound)
	}
	history, err := s.compositionStore.ListByPack(ctx, pack.ID, chainHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	order := slotOrder(pack)
	sequences := make([][]string, 0, len(history))
	for _, c := range history {
		var seq []string
		for _, key := range order {
			if v := c.Selections[key]; v != "" {
				seq = append(seq, v)
			}
		}
		if len(seq) > 0 {
			sequences = append(sequences, seq)
		}
	}

	chain := engine.NewChain()
	chain.Train(sequences)
	if !chain.Trained() {
		return nil, fmt.Errorf("%w: pack %s has no saved compositions", domain.ErrNotFound, pack.ID)
	}
	if maxLength <= 0 {
		maxLength = engine.DefaultChainLength
	}
	sd, err := seedFrom(seed)
	if err != nil {
		return nil, err
	}
	return chain.Generate(engine.NewRand(sd), maxLength), nil
}

// slotOrder lists the pack's top-level slots in declaration order followed
// by the remaining dataset keys in lexical order.
func slotOrder(p *domain.Pack) []string {
	seen := make(map[string]bool, len(p.Slots))
	order := make([]string, 0, len(p.Slots))
	for _, sl := range p.Slots {
		if !seen[sl.ID] {
			seen[sl.ID] = true
			order = append(order, sl.ID)
		}
	}
	for _, key := range engine.DatasetFromPack(p).Keys() {
		if !seen[key] {
			order = append(order, key)
		}
	}
	return order
}
