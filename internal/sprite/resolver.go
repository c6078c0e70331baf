package sprite

import (
	"context"
	"log/slog"

	"fringe-client/internal/itemdb"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultMaxPasses bounds the reordering loop.
const DefaultMaxPasses = 15

var tracer = otel.Tracer("fringe-client/sprite")

// VisState is the visibility of one slot after resolution.
type VisState uint8

const (
	Visible VisState = iota
	Hidden
	Substituted
)

// Visibility is one HideMask entry. Item is the substitute sprite when
// State is Substituted.
type Visibility struct {
	State VisState
	Item  itemdb.ItemID
}

// HideMask holds one Visibility per slot.
type HideMask []Visibility

// DrawOrder is a permutation of slot indices, back to front.
type DrawOrder []int

// Constraint is a resolved draw-before/draw-after requirement.
type Constraint struct {
	Slot     int
	Anchor   int
	After    bool // false = paint immediately before Anchor
	Priority int
}

// Result is the output of one resolution.
type Result struct {
	Facing      itemdb.Facing
	Order       DrawOrder
	Mask        HideMask
	Constraints []Constraint // constraints that survived the priority pass
	Dropped     []Constraint // lost to a higher-priority rule on the same anchor
	Passes      int
	Converged   bool
}

// Resolver computes paint order and hide masks from item visual rules.
type Resolver struct {
	rules     itemdb.Lookup
	logger    *slog.Logger
	maxPasses int
}

// NewResolver creates a resolver. maxPasses <= 0 selects DefaultMaxPasses.
func NewResolver(rules itemdb.Lookup, maxPasses int, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	return &Resolver{rules: rules, logger: logger, maxPasses: maxPasses}
}

// Resolve computes the paint order and hide mask of t for facing. dead
// selects the dead-pose rules. It never fails: the returned order is always a
// full permutation of the slot indices.
func (r *Resolver) Resolve(ctx context.Context, t *SlotTable, facing itemdb.Facing, dead bool) Result {
	_, span := tracer.Start(ctx, "sprite.Resolve")
	defer span.End()

	f := itemdb.Normalize(facing, dead)
	slots := t.Snapshot()

	res := Result{
		Facing: f,
		Mask:   r.resolveHides(slots, f),
	}
	res.Constraints, res.Dropped = r.resolveConstraints(slots, f)
	res.Order, res.Passes, res.Converged = r.reorder(len(slots), res.Constraints)

	if !res.Converged {
		r.logger.Debug("sprite order did not converge",
			"facing", f, "passes", res.Passes, "constraints", len(res.Constraints))
	}
	span.SetAttributes(
		attribute.Int("slots", len(slots)),
		attribute.Int("passes", res.Passes),
		attribute.Bool("converged", res.Converged),
	)
	return res
}

// resolveHides starts from an all-visible mask, so a slot whose hide
// condition no longer holds is restored simply by not being matched.
func (r *Resolver) resolveHides(slots []Slot, f itemdb.Facing) HideMask {
	mask := make(HideMask, len(slots))
	for i, s := range slots {
		if s.Empty() {
			continue
		}
		rule := r.rules.Rule(s.Item, f)
		for _, target := range rule.RemovalTargets() {
			repl := rule.RemoveSprites[target]
			if target == itemdb.AnySlot {
				applyBySlotItem(mask, slots, repl)
				continue
			}
			if target < 0 || target >= len(slots) {
				r.logger.Debug("removal target out of range", "item", s.Item, "slot", i, "target", target)
				continue
			}
			if len(repl) == 0 {
				mask[target] = Visibility{State: Hidden}
				continue
			}
			if mask[target].State == Hidden {
				continue
			}
			rp, ok := repl[slots[target].Item]
			if !ok {
				rp, ok = repl[itemdb.AnyItem]
			}
			if ok {
				mask[target] = toVisibility(rp)
			}
		}
	}
	return mask
}

// applyBySlotItem handles removals whose target slot is unknown: every slot
// currently holding a key item gets that key's replacement. Slots already
// hidden outright stay hidden.
func applyBySlotItem(mask HideMask, slots []Slot, repl map[itemdb.ItemID]itemdb.Replacement) {
	for j, s := range slots {
		if s.Empty() || mask[j].State == Hidden {
			continue
		}
		if rp, ok := repl[s.Item]; ok {
			mask[j] = toVisibility(rp)
		}
	}
}

func toVisibility(rp itemdb.Replacement) Visibility {
	if rp.Hide || rp.Item == 0 {
		return Visibility{State: Hidden}
	}
	return Visibility{State: Substituted, Item: rp.Item}
}

// resolveConstraints keeps at most one constraint per anchor slot: the one
// with the higher priority, the later slot on a tie.
func (r *Resolver) resolveConstraints(slots []Slot, f itemdb.Facing) (kept, dropped []Constraint) {
	byAnchor := make(map[int]int) // anchor -> index into kept
	for i, s := range slots {
		if s.Empty() {
			continue
		}
		rule := r.rules.Rule(s.Item, f)
		c, ok := constraintFor(i, rule)
		if !ok {
			continue
		}
		if c.Anchor < 0 || c.Anchor >= len(slots) || c.Anchor == i || slots[c.Anchor].Empty() {
			continue
		}
		if k, taken := byAnchor[c.Anchor]; taken {
			prev := kept[k]
			if c.Priority < prev.Priority {
				dropped = append(dropped, c)
				r.logger.Debug("draw constraint dropped", "slot", c.Slot, "anchor", c.Anchor, "winner", prev.Slot)
				continue
			}
			dropped = append(dropped, prev)
			r.logger.Debug("draw constraint dropped", "slot", prev.Slot, "anchor", prev.Anchor, "winner", c.Slot)
			kept[k] = c
			continue
		}
		byAnchor[c.Anchor] = len(kept)
		kept = append(kept, c)
	}
	return kept, dropped
}

func constraintFor(slot int, rule itemdb.VisualRule) (Constraint, bool) {
	switch {
	case rule.DrawBefore >= 0:
		return Constraint{Slot: slot, Anchor: rule.DrawBefore, Priority: rule.Priority}, true
	case rule.DrawAfter >= 0:
		return Constraint{Slot: slot, Anchor: rule.DrawAfter, After: true, Priority: rule.Priority}, true
	}
	return Constraint{}, false
}

// reorder runs the bounded fixed-point loop from the identity order. Each
// pass moves every unsatisfied slot next to its anchor's current position.
// Cyclic constraint sets may not converge; the order reached when the pass
// bound is hit is returned as is.
func (r *Resolver) reorder(n int, cs []Constraint) (DrawOrder, int, bool) {
	order := make(DrawOrder, n)
	for i := range order {
		order[i] = i
	}
	if len(cs) == 0 {
		return order, 0, true
	}

	// Constraints are visited in slot order each pass.
	bySlot := make([]*Constraint, n)
	for i := range cs {
		bySlot[cs[i].Slot] = &cs[i]
	}

	for pass := 1; pass <= r.maxPasses; pass++ {
		moved := false
		for slot := 0; slot < n; slot++ {
			c := bySlot[slot]
			if c == nil {
				continue
			}
			if moveNextTo(order, c) {
				moved = true
			}
		}
		if !moved {
			return order, pass, true
		}
	}
	return order, r.maxPasses, false
}

// moveNextTo places c.Slot immediately before or after c.Anchor in order.
// It reports whether anything moved.
func moveNextTo(order DrawOrder, c *Constraint) bool {
	pos := indexOf(order, c.Slot)
	anchor := indexOf(order, c.Anchor)
	if pos < 0 || anchor < 0 {
		return false
	}
	if (!c.After && pos+1 == anchor) || (c.After && pos == anchor+1) {
		return false
	}

	// Remove the slot, then insert relative to the anchor's new position.
	copy(order[pos:], order[pos+1:])
	rest := order[:len(order)-1]
	anchor = indexOf(rest, c.Anchor)
	at := anchor
	if c.After {
		at = anchor + 1
	}
	copy(order[at+1:], order[at:len(order)-1])
	order[at] = c.Slot
	return true
}

func indexOf(order DrawOrder, v int) int {
	for i, x := range order {
		if x == v {
			return i
		}
	}
	return -1
}
