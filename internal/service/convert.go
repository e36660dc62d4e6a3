package service

import (
	"fmt"

	"github.com/mmynk/sotien/internal/calculator"
	"github.com/mmynk/sotien/internal/category"
	"github.com/mmynk/sotien/internal/models"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/segment"
	"github.com/mmynk/sotien/pkg/api"
)

func toAPIMember(m models.Member) api.Member {
	return api.Member{
		ID:          m.ID,
		GroupID:     m.GroupID,
		DisplayName: m.DisplayName,
		UserID:      m.UserID,
	}
}

func toAPIGroup(g *models.Group) api.Group {
	members := make([]api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = toAPIMember(m)
	}
	return api.Group{
		ID:        g.ID,
		Title:     g.Title,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIPositions(positions []models.NetPosition, names map[string]string) []api.NetPosition {
	out := make([]api.NetPosition, len(positions))
	for i, p := range positions {
		out[i] = api.NetPosition{MemberID: p.MemberID, DisplayName: names[p.MemberID], Net: p.Net.String()}
	}
	return out
}

func toAPIShares(shares []models.Share) []api.Share {
	out := make([]api.Share, len(shares))
	for i, s := range shares {
		out[i] = toAPIShare(s)
	}
	return out
}

func toAPIShare(s models.Share) api.Share {
	return api.Share{
		ID:       s.ID,
		MemberID: s.MemberID,
		Amount:   s.Amount.String(),
		IsPaid:   s.IsPaid,
		PaidAt:   s.PaidAt,
	}
}

func toAPIPolicy(p models.SplitPolicy) api.SplitPolicy {
	out := api.SplitPolicy{
		Kind:           string(p.Kind),
		ParticipantIDs: p.ParticipantIDs,
	}
	for _, e := range p.Exact {
		out.Exact = append(out.Exact, api.ExactShare{MemberID: e.MemberID, Amount: e.Amount.String()})
	}
	for _, e := range p.Percent {
		out.Percent = append(out.Percent, api.PercentShare{MemberID: e.MemberID, Percent: e.Percent})
	}
	return out
}

func fromAPIPolicy(p api.SplitPolicy) (models.SplitPolicy, error) {
	out := models.SplitPolicy{
		Kind:           models.PolicyKind(p.Kind),
		ParticipantIDs: p.ParticipantIDs,
	}
	for _, e := range p.Exact {
		amount, err := money.Parse(e.Amount)
		if err != nil {
			return models.SplitPolicy{}, fmt.Errorf("exact share for %s: %w", e.MemberID, err)
		}
		out.Exact = append(out.Exact, models.ExactEntry{MemberID: e.MemberID, Amount: amount})
	}
	for _, e := range p.Percent {
		out.Percent = append(out.Percent, models.PercentEntry{MemberID: e.MemberID, Percent: e.Percent})
	}
	return out, nil
}

// policyMembers lists every member a policy refers to.
func policyMembers(p models.SplitPolicy) []string {
	ids := append([]string(nil), p.ParticipantIDs...)
	for _, e := range p.Exact {
		ids = append(ids, e.MemberID)
	}
	for _, e := range p.Percent {
		ids = append(ids, e.MemberID)
	}
	return ids
}

func toAPIExpense(e *models.Expense) api.Expense {
	return api.Expense{
		ID:             e.ID,
		GroupID:        e.GroupID,
		Title:          e.Title,
		PaidByMemberID: e.PaidByMemberID,
		Total:          e.Total.String(),
		Policy:         toAPIPolicy(e.Policy),
		Shares:         toAPIShares(e.Shares),
		CreatedAt:      e.CreatedAt,
	}
}

func toAPIExpenses(expenses []models.Expense) []api.Expense {
	out := make([]api.Expense, len(expenses))
	for i := range expenses {
		out[i] = toAPIExpense(&expenses[i])
	}
	return out
}

func toAPIOpenShare(groupID string, o calculator.OpenShare) api.OpenShare {
	return api.OpenShare{
		GroupID:      groupID,
		ShareID:      o.ShareID,
		ExpenseID:    o.ExpenseID,
		ExpenseTitle: o.ExpenseTitle,
		ExpenseTotal: o.ExpenseTotal.String(),
		Amount:       o.Amount.String(),
		DebtorID:     o.DebtorID,
		CreditorID:   o.CreditorID,
		SplitKind:    string(o.Policy),
		CreatedAt:    o.CreatedAt,
	}
}

func toAPIRecord(r models.SettlementRecord) api.SettlementRecord {
	return api.SettlementRecord{
		ID:             r.ID,
		MemberID:       r.MemberID,
		UserID:         r.UserID,
		CounterpartyID: r.CounterpartyID,
		Direction:      string(r.Direction),
		Amount:         r.Amount.String(),
		Category:       r.Category,
		Note:           r.Note,
		CreatedAt:      r.CreatedAt,
	}
}

func toAPIPayment(groupID string, p calculator.Payment) api.Payment {
	return api.Payment{
		GroupID:        groupID,
		Date:           p.Date,
		Kind:           string(p.Kind),
		Amount:         p.Amount.String(),
		ExpenseID:      p.ExpenseID,
		ExpenseTitle:   p.ExpenseTitle,
		CounterpartyID: p.CounterpartyID,
	}
}

func toAPISuggestions(suggestions []category.Suggestion) []api.CategorySuggestion {
	out := make([]api.CategorySuggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = api.CategorySuggestion{Category: string(s.Category), Confidence: s.Confidence}
	}
	return out
}

func toAPIPrediction(p category.Prediction) api.PredictCategoryResponse {
	return api.PredictCategoryResponse{
		Category:    string(p.Category),
		Confidence:  p.Confidence,
		Suggestions: toAPISuggestions(p.Suggestions),
		Model:       p.Model,
	}
}

func toAPICandidate(c segment.Candidate) api.TransactionCandidate {
	return api.TransactionCandidate{
		Sentence:           c.Sentence,
		Amount:             c.Amount.String(),
		AmountConfidence:   c.AmountConfidence,
		MatchedText:        c.MatchedText,
		ExtractionMethod:   string(c.Method),
		Category:           string(c.Category),
		CategoryConfidence: c.CategoryConfidence,
		Suggestions:        toAPISuggestions(c.Suggestions),
		Model:              c.Model,
	}
}
