package service

import (
	"strings"
	"time"

	"finance-manager-be/internal/dto"
	"finance-manager-be/internal/entity"

	"github.com/shopspring/decimal"
)

// The list views filter and aggregate in memory: the repository returns
// the user's full set and these pure helpers do the rest. The data sets
// are per-user and small; pushing the pseudo-status "overdue" into SQL
// would duplicate the date rule in two places.

// MatchesAccountFilter applies the list-endpoint filter to one entry.
func MatchesAccountFilter(item *dto.AccountResponse, filter *dto.AccountFilter, today time.Time) bool {
	switch filter.Status {
	case "", "all":
	case "overdue":
		if !item.IsOverdue {
			return false
		}
	default:
		if item.Status != filter.Status {
			return false
		}
	}

	if filter.ContactId != nil && (item.ContactId == nil || *item.ContactId != *filter.ContactId) {
		return false
	}
	if filter.CategoryId != nil && (item.CategoryId == nil || *item.CategoryId != *filter.CategoryId) {
		return false
	}

	if filter.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", filter.DateFrom); err == nil {
			due, err := time.Parse("2006-01-02", item.DueDate)
			if err != nil || due.Before(from) {
				return false
			}
		}
	}
	if filter.DateTo != "" {
		if to, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
			due, err := time.Parse("2006-01-02", item.DueDate)
			if err != nil || due.After(to) {
				return false
			}
		}
	}
	if filter.Month != "" && !strings.HasPrefix(item.DueDate, filter.Month+"-") {
		return false
	}
	if filter.DueWithinDays != nil {
		due, err := time.Parse("2006-01-02", item.DueDate)
		if err != nil {
			return false
		}
		horizon := today.AddDate(0, 0, *filter.DueWithinDays)
		if due.Before(entity.DateOnly(today)) || due.After(entity.DateOnly(horizon)) {
			return false
		}
	}

	if filter.MinAmount != "" {
		if min, err := decimal.NewFromString(filter.MinAmount); err == nil && item.Amount.LessThan(min) {
			return false
		}
	}
	if filter.MaxAmount != "" {
		if max, err := decimal.NewFromString(filter.MaxAmount); err == nil && item.Amount.GreaterThan(max) {
			return false
		}
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(item.Description), needle) &&
			!strings.Contains(strings.ToLower(item.ContactName), needle) &&
			!strings.Contains(strings.ToLower(item.Reference), needle) &&
			!strings.Contains(strings.ToLower(item.Notes), needle) {
			return false
		}
	}

	return true
}

// FilterAccounts returns the entries matching the filter, preserving order.
func FilterAccounts(items []dto.AccountResponse, filter *dto.AccountFilter, today time.Time) []dto.AccountResponse {
	out := make([]dto.AccountResponse, 0, len(items))
	for i := range items {
		if MatchesAccountFilter(&items[i], filter, today) {
			out = append(out, items[i])
		}
	}
	return out
}

// SummarizeAccounts reduces a list to its totals. Overdue entries are a
// subset of pending ones, so the pending bucket includes them.
func SummarizeAccounts(items []dto.AccountResponse) dto.AccountsSummaryResponse {
	summary := dto.AccountsSummaryResponse{
		Total:        decimal.Zero,
		TotalPending: decimal.Zero,
		TotalPaid:    decimal.Zero,
		TotalOverdue: decimal.Zero,
	}

	for i := range items {
		item := &items[i]
		summary.Total = summary.Total.Add(item.Amount)
		summary.Count++

		switch item.Status {
		case string(entity.AccountStatusPending):
			summary.TotalPending = summary.TotalPending.Add(item.Amount)
			summary.CountPending++
			if item.IsOverdue {
				summary.TotalOverdue = summary.TotalOverdue.Add(item.Amount)
				summary.CountOverdue++
			}
		case string(entity.AccountStatusPaid):
			summary.TotalPaid = summary.TotalPaid.Add(item.Amount)
			summary.CountPaid++
		}
	}

	return summary
}
