package dto_test

import (
	"net/http"
	"net/url"
	"reflect"
	"stay/shared/constant"
	"stay/shared/dto"
	"stay/shared/model"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := createdAt.Format(constant.DateFormat)
	expectedModifiedAt := modifiedAt.Format(constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with lowercase sort direction",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortDir: "DESC",
			},
		},
		{
			name: "with invalid sort direction",
			queryParams: map[string]string{
				"sort_dir": "sideways",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "email",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:   3,
				Limit:  constant.DefaultValueLimit,
				SortBy: "email",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/test")
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			if *queryParams != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, *queryParams)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name: "eq with table prefix",
			filter: dto.Filter{
				Field:    "room_id",
				Value:    "room-1",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			expectedSQL:  "bookings.room_id = :room_id",
			expectedArgs: map[string]any{"room_id": "room-1"},
		},
		{
			name: "eq with custom arg name",
			filter: dto.Filter{
				ArgName:  "scope_user_id",
				Field:    "user_id",
				Value:    "user-1",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			expectedSQL:  "bookings.user_id = :scope_user_id",
			expectedArgs: map[string]any{"scope_user_id": "user-1"},
		},
		{
			name: "like lowercases both sides",
			filter: dto.Filter{
				Field:    "name",
				Value:    "grand",
				Operator: dto.FilterOperatorLike,
				Table:    "hotels",
			},
			expectedSQL:  "LOWER(hotels.name) LIKE LOWER(:name) ",
			expectedArgs: map[string]any{"name": "%grand%"},
		},
		{
			name: "in expands slice values",
			filter: dto.Filter{
				Field:    "status",
				Value:    []string{"paid", "pending"},
				Operator: dto.FilterOperatorIn,
			},
			expectedSQL:  "status IN (:status_0, :status_1) ",
			expectedArgs: map[string]any{"status_0": "paid", "status_1": "pending"},
		},
		{
			name: "less operator",
			filter: dto.Filter{
				Field:    "check_in_date",
				Value:    "2026-09-15",
				Operator: dto.FilterOperatorLess,
				Table:    "bookings",
			},
			expectedSQL:  "bookings.check_in_date < :check_in_date",
			expectedArgs: map[string]any{"check_in_date": "2026-09-15"},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "id",
				Value:    "1",
				Operator: "unknown",
			},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			if sql != tt.expectedSQL {
				t.Errorf("expected SQL %q, got %q", tt.expectedSQL, sql)
			}

			if !reflect.DeepEqual(args, tt.expectedArgs) {
				t.Errorf("expected args %+v, got %+v", tt.expectedArgs, args)
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group yields empty clause", func(t *testing.T) {
		group := dto.FilterGroup{}

		sql, args := group.GetWhereClause()

		if sql != "" {
			t.Errorf("expected empty SQL, got %q", sql)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %+v", args)
		}
	})

	t.Run("joins filters with the group operator", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{
					Field:    "room_id",
					Value:    "room-1",
					Operator: dto.FilterOperatorEq,
					Table:    "bookings",
				},
				dto.Filter{
					Field:    "is_active",
					Value:    true,
					Operator: dto.FilterOperatorEq,
					Table:    "bookings",
				},
			},
		}

		sql, args := group.GetWhereClause()

		expectedSQL := "(bookings.room_id = :room_id AND bookings.is_active = :is_active)"
		if sql != expectedSQL {
			t.Errorf("expected SQL %q, got %q", expectedSQL, sql)
		}

		expectedArgs := map[string]any{"room_id": "room-1", "is_active": true}
		if !reflect.DeepEqual(args, expectedArgs) {
			t.Errorf("expected args %+v, got %+v", expectedArgs, args)
		}
	})

	t.Run("nested groups parenthesize independently", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{
					Field:    "room_id",
					Value:    "room-1",
					Operator: dto.FilterOperatorEq,
					Table:    "bookings",
				},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{
							ArgName:  "scope_user_id",
							Field:    "user_id",
							Value:    "user-1",
							Operator: dto.FilterOperatorEq,
							Table:    "bookings",
						},
						dto.Filter{
							ArgName:  "scope_manager_id",
							Field:    "manager_id",
							Value:    "manager-1",
							Operator: dto.FilterOperatorEq,
							Table:    "hotels",
						},
					},
				},
			},
		}

		sql, args := group.GetWhereClause()

		expectedSQL := "(bookings.room_id = :room_id AND (bookings.user_id = :scope_user_id OR hotels.manager_id = :scope_manager_id))"
		if sql != expectedSQL {
			t.Errorf("expected SQL %q, got %q", expectedSQL, sql)
		}

		expectedArgs := map[string]any{
			"room_id":          "room-1",
			"scope_user_id":    "user-1",
			"scope_manager_id": "manager-1",
		}
		if !reflect.DeepEqual(args, expectedArgs) {
			t.Errorf("expected args %+v, got %+v", expectedArgs, args)
		}
	})

	t.Run("empty nested group is skipped", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{
					Field:    "room_id",
					Value:    "room-1",
					Operator: dto.FilterOperatorEq,
					Table:    "bookings",
				},
				dto.FilterGroup{},
			},
		}

		sql, _ := group.GetWhereClause()

		expectedSQL := "(bookings.room_id = :room_id)"
		if sql != expectedSQL {
			t.Errorf("expected SQL %q, got %q", expectedSQL, sql)
		}
	})
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}
