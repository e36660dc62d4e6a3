package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
)

// PercentEpsilon is the tolerance allowed on the sum of percentages.
const PercentEpsilon = 1e-4

// Compute splits total according to the given policy.
// The returned shares always sum to total exactly.
func Compute(total money.Cents, policy models.SplitPolicy) ([]models.Share, error) {
	switch policy.Kind {
	case models.PolicyEqual:
		return EqualSplit(total, policy.ParticipantIDs)
	case models.PolicyExact:
		return ExactSplit(total, policy.Exact)
	case models.PolicyPercent:
		return PercentSplit(total, policy.Percent)
	default:
		return nil, fmt.Errorf("%w: unknown split policy %q", ErrInvalidInput, policy.Kind)
	}
}

// EqualSplit divides total evenly. When it does not divide exactly, the first
// participants (in input order) receive one extra cent each.
func EqualSplit(total money.Cents, participantIDs []string) ([]models.Share, error) {
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one participant required", ErrInvalidInput)
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total must be positive, got %s", ErrInvalidInput, total)
	}
	if err := checkMembers(participantIDs); err != nil {
		return nil, err
	}

	n := money.Cents(len(participantIDs))
	base := total / n
	remainder := total - base*n

	shares := make([]models.Share, len(participantIDs))
	for i, id := range participantIDs {
		amount := base
		if money.Cents(i) < remainder {
			amount++
		}
		shares[i] = models.Share{MemberID: id, Amount: amount}
	}
	return shares, nil
}

// ExactSplit uses the declared amounts as-is after checking they sum to total.
func ExactSplit(total money.Cents, entries []models.ExactEntry) ([]models.Share, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one participant required", ErrInvalidInput)
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total must be positive, got %s", ErrInvalidInput, total)
	}

	ids := make([]string, len(entries))
	var sum money.Cents
	for i, e := range entries {
		if e.Amount < 0 {
			return nil, fmt.Errorf("%w: negative amount %s for member %s", ErrInvalidInput, e.Amount, e.MemberID)
		}
		ids[i] = e.MemberID
		sum += e.Amount
	}
	if err := checkMembers(ids); err != nil {
		return nil, err
	}
	if sum != total {
		return nil, &MismatchError{Expected: total, Computed: sum}
	}

	shares := make([]models.Share, len(entries))
	for i, e := range entries {
		shares[i] = models.Share{MemberID: e.MemberID, Amount: e.Amount}
	}
	return shares, nil
}

// PercentSplit allocates total by percentage using the largest remainder
// method. Each entry first receives the floor of its ideal amount, then the
// leftover cents go to the largest fractional parts, ties broken by input
// order. Shares are returned in input order.
func PercentSplit(total money.Cents, entries []models.PercentEntry) ([]models.Share, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one participant required", ErrInvalidInput)
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total must be positive, got %s", ErrInvalidInput, total)
	}

	ids := make([]string, len(entries))
	var percentSum float64
	for i, e := range entries {
		if math.IsNaN(e.Percent) || math.IsInf(e.Percent, 0) || e.Percent < 0 {
			return nil, fmt.Errorf("%w: invalid percent %v for member %s", ErrInvalidInput, e.Percent, e.MemberID)
		}
		ids[i] = e.MemberID
		percentSum += e.Percent
	}
	if err := checkMembers(ids); err != nil {
		return nil, err
	}
	if math.Abs(percentSum-100) > PercentEpsilon {
		return nil, fmt.Errorf("%w: percentages sum to %v, expected 100", ErrInvalidInput, percentSum)
	}

	totalDec := decimal.NewFromInt(int64(total))
	amounts := make([]money.Cents, len(entries))
	fracs := make([]decimal.Decimal, len(entries))
	var allocated money.Cents
	for i, e := range entries {
		ideal := totalDec.Mul(decimal.NewFromFloat(e.Percent)).Shift(-2)
		floor := ideal.Floor()
		amounts[i] = money.Cents(floor.IntPart())
		fracs[i] = ideal.Sub(floor)
		allocated += amounts[i]
	}

	// Indices by descending fractional part; the stable sort keeps input
	// order among equal fractions.
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fracs[order[a]].GreaterThan(fracs[order[b]])
	})

	remainder := total - allocated
	for k := 0; remainder > 0; k = (k + 1) % len(order) {
		amounts[order[k]]++
		remainder--
	}
	// Percentages within epsilon above 100 can overshoot on large totals.
	for k := len(order) - 1; remainder < 0; {
		if i := order[k]; amounts[i] > 0 {
			amounts[i]--
			remainder++
		}
		if k--; k < 0 {
			k = len(order) - 1
		}
	}

	shares := make([]models.Share, len(entries))
	for i, e := range entries {
		shares[i] = models.Share{MemberID: e.MemberID, Amount: amounts[i]}
	}
	return shares, nil
}

func checkMembers(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: empty member id", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
