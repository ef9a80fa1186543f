package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	catalogapp "github.com/Samod99/NourishFoods-sub000/internal/catalog/application"
	catalog "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
	"github.com/Samod99/NourishFoods-sub000/internal/core"
	"github.com/Samod99/NourishFoods-sub000/internal/health/domain"
	"github.com/Samod99/NourishFoods-sub000/internal/identity"
	"github.com/Samod99/NourishFoods-sub000/internal/kvstore"
	"github.com/Samod99/NourishFoods-sub000/internal/notify"
	orderdomain "github.com/Samod99/NourishFoods-sub000/internal/order/domain"
)

const dateLayout = "2006-01-02"

// dailyTotalRetention bounds how many closed days of totals are kept for the
// weekly series and trend insight.
const dailyTotalRetention = 30

// Engine ingests consumption events, tracks today's calories against the
// profile target, and derives alerts, recommendations and insights. Entries
// are scoped to the current calendar day; on the first calorie-affecting
// read or write of a new day the previous day's entries are folded into the
// daily-total series and cleared.
type Engine struct {
	mu       sync.Mutex
	log      *slog.Logger
	store    kvstore.Store
	catalog  catalogapp.Store
	identity identity.Provider
	notifier notify.Sink
	loc      *time.Location
	now      func() time.Time

	profile     *domain.Profile
	entries     []domain.Entry
	dailyTotals map[string]int
	lastReset   time.Time
	alert       *domain.Alert
	recs        []domain.Recommendation
	listeners   []func()
}

func NewEngine(log *slog.Logger, store kvstore.Store, cat catalogapp.Store, id identity.Provider, notifier notify.Sink, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		log:         log,
		store:       store,
		catalog:     cat,
		identity:    id,
		notifier:    notifier,
		loc:         loc,
		now:         time.Now,
		dailyTotals: make(map[string]int),
	}
}

// WithClock overrides the time source; tests use a fixed clock.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// OnChange registers a callback invoked after every state change.
func (e *Engine) OnChange(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) changed() {
	for _, fn := range e.listeners {
		fn()
	}
}

func (e *Engine) userID() string {
	if id, ok := e.identity.CurrentUserID(); ok {
		return id
	}
	return "anonymous"
}

func (e *Engine) key(kind string) string {
	return "health:" + kind + ":" + e.userID()
}

func (e *Engine) saveJSON(ctx context.Context, kind string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", core.ErrPersistence, kind, err)
	}
	if err := e.store.Save(ctx, e.key(kind), payload); err != nil {
		return fmt.Errorf("%w: save %s: %v", core.ErrPersistence, kind, err)
	}
	return nil
}

func (e *Engine) loadJSON(ctx context.Context, kind string, v any) (bool, error) {
	raw, ok, err := e.store.Load(ctx, e.key(kind))
	if err != nil {
		return false, fmt.Errorf("%w: load %s: %v", core.ErrPersistence, kind, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", core.ErrPersistence, kind, err)
	}
	return true, nil
}

// Load restores the engine state for the current identity.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var p domain.Profile
	if ok, err := e.loadJSON(ctx, "profile", &p); err != nil {
		return err
	} else if ok {
		e.profile = &p
	} else {
		e.profile = nil
	}

	e.entries = nil
	if _, err := e.loadJSON(ctx, "entries", &e.entries); err != nil {
		return err
	}

	e.dailyTotals = make(map[string]int)
	if _, err := e.loadJSON(ctx, "dailyTotals", &e.dailyTotals); err != nil {
		return err
	}

	var reset string
	if ok, err := e.loadJSON(ctx, "lastReset", &reset); err != nil {
		return err
	} else if ok {
		if t, perr := time.ParseInLocation(dateLayout, reset, e.loc); perr == nil {
			e.lastReset = t
		}
	}

	e.reevaluate(ctx)
	return nil
}

// ensureToday implements the calendar-day reset. Must hold mu.
func (e *Engine) ensureToday(ctx context.Context) {
	now := e.now()
	if !e.lastReset.IsZero() && domain.SameCalendarDay(now, e.lastReset, e.loc) {
		return
	}

	if len(e.entries) > 0 {
		for _, entry := range e.entries {
			day := entry.Date.In(e.loc).Format(dateLayout)
			e.dailyTotals[day] += entry.TotalCalories()
		}
		e.trimDailyTotals(now)
		if err := e.saveJSON(ctx, "dailyTotals", e.dailyTotals); err != nil {
			e.log.Warn("daily totals save failed", "err", err)
		}
	}

	e.entries = nil
	e.lastReset = now
	e.alert = nil
	e.recs = nil
	if err := e.saveJSON(ctx, "entries", e.entries); err != nil {
		e.log.Warn("entries save failed on reset", "err", err)
	}
	if err := e.saveJSON(ctx, "lastReset", now.In(e.loc).Format(dateLayout)); err != nil {
		e.log.Warn("last reset save failed", "err", err)
	}
	e.log.Info("calorie log reset for new day", "date", now.In(e.loc).Format(dateLayout))
}

func (e *Engine) trimDailyTotals(now time.Time) {
	cutoff := now.In(e.loc).AddDate(0, 0, -dailyTotalRetention)
	for day := range e.dailyTotals {
		t, err := time.ParseInLocation(dateLayout, day, e.loc)
		if err != nil || t.Before(cutoff) {
			delete(e.dailyTotals, day)
		}
	}
}

// Profile returns the stored biometric profile, or nil when none is set.
func (e *Engine) Profile() *domain.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profile == nil {
		return nil
	}
	p := *e.profile
	return &p
}

func (e *Engine) SetProfile(ctx context.Context, p domain.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrValidation, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile = &p
	if err := e.saveJSON(ctx, "profile", p); err != nil {
		return err
	}
	e.reevaluate(ctx)
	e.changed()
	return nil
}

// AddEntry logs a consumption dated now and recomputes the alert and
// recommendation state.
func (e *Engine) AddEntry(ctx context.Context, p catalog.Product, qty int, meal domain.MealType) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", core.ErrValidation)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureToday(ctx)

	now := e.now()
	e.entries = append(e.entries, domain.Entry{
		Date:        now,
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    string(p.Category),
		Calories:    p.Calories,
		Quantity:    qty,
		MealType:    meal,
		Timestamp:   now,
	})
	if err := e.saveJSON(ctx, "entries", e.entries); err != nil {
		return err
	}

	e.reevaluate(ctx)
	e.changed()
	return nil
}

// ConsumePurchase logs every line of a placed order as a dinner-tagged
// consumption. Implements the order assembler's purchase consumer port.
func (e *Engine) ConsumePurchase(ctx context.Context, purchase orderdomain.PurchasePlaced) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureToday(ctx)

	now := e.now()
	for _, l := range purchase.Lines {
		e.entries = append(e.entries, domain.Entry{
			Date:        now,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Category:    l.Category,
			Calories:    l.Calories,
			Quantity:    l.Quantity,
			MealType:    domain.MealDinner,
			Timestamp:   now,
		})
	}
	if err := e.saveJSON(ctx, "entries", e.entries); err != nil {
		e.log.Warn("entries save failed after purchase", "order", purchase.OrderID, "err", err)
	}
	e.reevaluate(ctx)
	e.changed()
}

func (e *Engine) todayTotalLocked() int {
	total := 0
	for _, entry := range e.entries {
		total += entry.TotalCalories()
	}
	return total
}

// reevaluate recomputes alert and recommendations from scratch. Must hold mu.
func (e *Engine) reevaluate(ctx context.Context) {
	if e.profile == nil {
		e.alert = nil
		e.recs = domain.BuildRecommendations(e.entries, 0, 0)
		return
	}
	total := e.todayTotalLocked()
	target := e.profile.DailyCalorieTarget()

	prev := e.alert
	e.alert = domain.EvaluateAlert(total, target)
	if e.alert != nil {
		products, err := e.catalog.Products(ctx)
		if err != nil {
			e.log.Warn("catalog fetch for suggestions failed", "err", err)
		} else {
			e.alert.Suggestions = domain.SuggestAlternatives(products, e.profile.Allergies, e.alert.Kind == domain.AlertExceeded)
		}
		if e.notifier != nil && e.alert.Kind == domain.AlertExceeded &&
			(prev == nil || prev.Kind != domain.AlertExceeded) {
			_ = e.notifier.Notify(ctx, "Calorie limit exceeded",
				fmt.Sprintf("You are %d calories over today's target.", e.alert.Excess))
		}
	}

	e.recs = domain.BuildRecommendations(e.entries, total, target)
}

// TodayCalories returns the running total for the current calendar day.
func (e *Engine) TodayCalories(ctx context.Context) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureToday(ctx)
	return e.todayTotalLocked()
}

// Entries returns a copy of today's log.
func (e *Engine) Entries(ctx context.Context) []domain.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureToday(ctx)
	out := make([]domain.Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Alert returns the current alert, or nil when today's total is under the
// warning threshold.
func (e *Engine) Alert(ctx context.Context) *domain.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureToday(ctx)
	if e.alert == nil {
		return nil
	}
	a := *e.alert
	return &a
}

func (e *Engine) Recommendations(ctx context.Context) []domain.Recommendation {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureToday(ctx)
	out := make([]domain.Recommendation, len(e.recs))
	copy(out, e.recs)
	return out
}

// WeeklySeries returns the last seven daily calorie totals, oldest to newest,
// with today's total computed from the live log.
func (e *Engine) WeeklySeries(ctx context.Context) []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureToday(ctx)
	return e.weeklySeriesLocked()
}

func (e *Engine) weeklySeriesLocked() []int {
	now := e.now().In(e.loc)
	series := make([]int, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6)
		series[i] = e.dailyTotals[day.Format(dateLayout)]
	}
	series[6] += e.todayTotalLocked()
	return series
}

// Insights derives the weekly trend and late-night signals.
func (e *Engine) Insights(ctx context.Context) []domain.Insight {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ensureToday(ctx)

	var out []domain.Insight
	if in := domain.TrendInsight(e.weeklySeriesLocked()); in != nil {
		out = append(out, *in)
	}
	if in := domain.LateNightInsight(e.entries, e.loc); in != nil {
		out = append(out, *in)
	}
	return out
}
