package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tallyhq/tally-backend/internal/domain"
)

// MockGroupRepository is a mock implementation of domain.GroupRepository
type MockGroupRepository struct {
	Groups map[uuid.UUID]*domain.Group
}

// NewMockGroupRepository creates a new MockGroupRepository
func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{Groups: make(map[uuid.UUID]*domain.Group)}
}

// Create creates a new group
func (m *MockGroupRepository) Create(group *domain.Group) (*domain.Group, error) {
	group.ID = uuid.New()
	group.CreatedAt = time.Now()
	group.UpdatedAt = group.CreatedAt
	m.Groups[group.ID] = group
	return group, nil
}

// GetByID retrieves a group by ID
func (m *MockGroupRepository) GetByID(id uuid.UUID) (*domain.Group, error) {
	if group, ok := m.Groups[id]; ok {
		return group, nil
	}
	return nil, domain.ErrGroupNotFound
}

// Update updates an existing group
func (m *MockGroupRepository) Update(group *domain.Group) (*domain.Group, error) {
	if _, ok := m.Groups[group.ID]; !ok {
		return nil, domain.ErrGroupNotFound
	}
	group.UpdatedAt = time.Now()
	m.Groups[group.ID] = group
	return group, nil
}

// Delete deletes a group
func (m *MockGroupRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Groups[id]; !ok {
		return domain.ErrGroupNotFound
	}
	delete(m.Groups, id)
	return nil
}

// AddGroup seeds a group with the given ID
func (m *MockGroupRepository) AddGroup(group *domain.Group) *domain.Group {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	m.Groups[group.ID] = group
	return group
}

// MockParticipantRepository is a mock implementation of
// domain.ParticipantRepository. Participants keep insertion order per
// group, matching the joined_at,id ordering of the real repository.
type MockParticipantRepository struct {
	Participants  map[uuid.UUID]*domain.Participant
	byGroup       map[uuid.UUID][]uuid.UUID
	HasActivityFn func(id uuid.UUID) (bool, error)
}

// NewMockParticipantRepository creates a new MockParticipantRepository
func NewMockParticipantRepository() *MockParticipantRepository {
	return &MockParticipantRepository{
		Participants: make(map[uuid.UUID]*domain.Participant),
		byGroup:      make(map[uuid.UUID][]uuid.UUID),
	}
}

// Create creates a new participant
func (m *MockParticipantRepository) Create(participant *domain.Participant) (*domain.Participant, error) {
	participant.ID = uuid.New()
	if participant.JoinedAt.IsZero() {
		participant.JoinedAt = time.Now()
	}
	m.Participants[participant.ID] = participant
	m.byGroup[participant.GroupID] = append(m.byGroup[participant.GroupID], participant.ID)
	return participant, nil
}

// GetByID retrieves a participant by ID
func (m *MockParticipantRepository) GetByID(id uuid.UUID) (*domain.Participant, error) {
	if participant, ok := m.Participants[id]; ok {
		return participant, nil
	}
	return nil, domain.ErrParticipantNotFound
}

// ListByGroup returns the group's participants in insertion order
func (m *MockParticipantRepository) ListByGroup(groupID uuid.UUID) ([]*domain.Participant, error) {
	ids := m.byGroup[groupID]
	participants := make([]*domain.Participant, 0, len(ids))
	for _, id := range ids {
		if participant, ok := m.Participants[id]; ok {
			participants = append(participants, participant)
		}
	}
	return participants, nil
}

// Update updates an existing participant
func (m *MockParticipantRepository) Update(participant *domain.Participant) (*domain.Participant, error) {
	if _, ok := m.Participants[participant.ID]; !ok {
		return nil, domain.ErrParticipantNotFound
	}
	m.Participants[participant.ID] = participant
	return participant, nil
}

// Delete deletes a participant
func (m *MockParticipantRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Participants[id]; !ok {
		return domain.ErrParticipantNotFound
	}
	delete(m.Participants, id)
	return nil
}

// HasActivity reports whether the participant appears in any expense or
// settlement. Defaults to false unless HasActivityFn is set.
func (m *MockParticipantRepository) HasActivity(id uuid.UUID) (bool, error) {
	if m.HasActivityFn != nil {
		return m.HasActivityFn(id)
	}
	return false, nil
}

// AddParticipant seeds a participant, preserving a preset ID
func (m *MockParticipantRepository) AddParticipant(participant *domain.Participant) *domain.Participant {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	if participant.JoinedAt.IsZero() {
		participant.JoinedAt = time.Now()
	}
	m.Participants[participant.ID] = participant
	m.byGroup[participant.GroupID] = append(m.byGroup[participant.GroupID], participant.ID)
	return participant
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories    map[uuid.UUID]*domain.Category
	HasExpensesFn func(id uuid.UUID) (bool, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[uuid.UUID]*domain.Category)}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByName retrieves a category by group and name
func (m *MockCategoryRepository) GetByName(groupID uuid.UUID, name string) (*domain.Category, error) {
	for _, category := range m.Categories {
		if category.GroupID == groupID && category.Name == name {
			return category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// ListByGroup returns the group's categories sorted by name
func (m *MockCategoryRepository) ListByGroup(groupID uuid.UUID) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, category := range m.Categories {
		if category.GroupID == groupID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// Update updates an existing category
func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	if _, ok := m.Categories[category.ID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.UpdatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

// Delete deletes a category
func (m *MockCategoryRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// HasExpenses reports whether any expense references the category.
// Defaults to false unless HasExpensesFn is set.
func (m *MockCategoryRepository) HasExpenses(id uuid.UUID) (bool, error) {
	if m.HasExpensesFn != nil {
		return m.HasExpensesFn(id)
	}
	return false, nil
}

// AddCategory seeds a category, preserving a preset ID
func (m *MockCategoryRepository) AddCategory(category *domain.Category) *domain.Category {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	m.Categories[category.ID] = category
	return category
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository.
// Expenses keep insertion order per group, matching the occurred_at,id
// ordering of the real repository for sequentially created fixtures.
type MockExpenseRepository struct {
	Expenses map[uuid.UUID]*domain.Expense
	byGroup  map[uuid.UUID][]uuid.UUID
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[uuid.UUID]*domain.Expense),
		byGroup:  make(map[uuid.UUID][]uuid.UUID),
	}
}

// Create creates a new expense with its shares
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	expense.ID = uuid.New()
	expense.CreatedAt = time.Now()
	m.Expenses[expense.ID] = expense
	m.byGroup[expense.GroupID] = append(m.byGroup[expense.GroupID], expense.ID)
	return expense, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	if expense, ok := m.Expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// ListByGroup returns the group's expenses with filters and pagination
func (m *MockExpenseRepository) ListByGroup(groupID uuid.UUID, filters *domain.ExpenseFilters) (*domain.PaginatedExpenses, error) {
	all, _ := m.AllByGroup(groupID)

	var filtered []*domain.Expense
	for _, expense := range all {
		if filters.CategoryID != nil {
			if expense.CategoryID == nil || *expense.CategoryID != *filters.CategoryID {
				continue
			}
		}
		if filters.PeriodKey != nil {
			if expense.PeriodKey == nil || *expense.PeriodKey != *filters.PeriodKey {
				continue
			}
		}
		if filters.StartDate != nil && expense.OccurredAt.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && expense.OccurredAt.After(*filters.EndDate) {
			continue
		}
		filtered = append(filtered, expense)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	total := int64(len(filtered))
	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))

	start := int((page - 1) * pageSize)
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + int(pageSize)
	if end > len(filtered) {
		end = len(filtered)
	}

	return &domain.PaginatedExpenses{
		Data:       filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// AllByGroup returns every expense of the group in insertion order
func (m *MockExpenseRepository) AllByGroup(groupID uuid.UUID) ([]*domain.Expense, error) {
	ids := m.byGroup[groupID]
	expenses := make([]*domain.Expense, 0, len(ids))
	for _, id := range ids {
		if expense, ok := m.Expenses[id]; ok {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

// Delete deletes an expense
func (m *MockExpenseRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// MockSettlementRepository is a mock implementation of
// domain.SettlementRepository
type MockSettlementRepository struct {
	Settlements map[uuid.UUID]*domain.Settlement
	byGroup     map[uuid.UUID][]uuid.UUID
}

// NewMockSettlementRepository creates a new MockSettlementRepository
func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{
		Settlements: make(map[uuid.UUID]*domain.Settlement),
		byGroup:     make(map[uuid.UUID][]uuid.UUID),
	}
}

// Create creates a new settlement
func (m *MockSettlementRepository) Create(settlement *domain.Settlement) (*domain.Settlement, error) {
	settlement.ID = uuid.New()
	settlement.CreatedAt = time.Now()
	m.Settlements[settlement.ID] = settlement
	m.byGroup[settlement.GroupID] = append(m.byGroup[settlement.GroupID], settlement.ID)
	return settlement, nil
}

// GetByID retrieves a settlement by ID
func (m *MockSettlementRepository) GetByID(id uuid.UUID) (*domain.Settlement, error) {
	if settlement, ok := m.Settlements[id]; ok {
		return settlement, nil
	}
	return nil, domain.ErrSettlementNotFound
}

// ListByGroup returns the group's settlements in insertion order
func (m *MockSettlementRepository) ListByGroup(groupID uuid.UUID) ([]*domain.Settlement, error) {
	ids := m.byGroup[groupID]
	settlements := make([]*domain.Settlement, 0, len(ids))
	for _, id := range ids {
		if settlement, ok := m.Settlements[id]; ok {
			settlements = append(settlements, settlement)
		}
	}
	return settlements, nil
}

// Delete deletes a settlement
func (m *MockSettlementRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Settlements[id]; !ok {
		return domain.ErrSettlementNotFound
	}
	delete(m.Settlements, id)
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets    map[string]*domain.Budget
	Categories *MockCategoryRepository
}

// NewMockBudgetRepository creates a new MockBudgetRepository. The category
// mock is used to join category names in GetByPeriod.
func NewMockBudgetRepository(categories *MockCategoryRepository) *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets:    make(map[string]*domain.Budget),
		Categories: categories,
	}
}

func budgetKey(groupID, categoryID uuid.UUID, periodKey string) string {
	return groupID.String() + "/" + categoryID.String() + "/" + periodKey
}

// Upsert inserts or replaces a budget
func (m *MockBudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	key := budgetKey(budget.GroupID, budget.CategoryID, budget.PeriodKey)
	if existing, ok := m.Budgets[key]; ok {
		existing.Amount = budget.Amount
		existing.UpdatedAt = time.Now()
		return existing, nil
	}
	budget.ID = uuid.New()
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[key] = budget
	return budget, nil
}

// UpsertBatch inserts or replaces several budgets
func (m *MockBudgetRepository) UpsertBatch(budgets []*domain.Budget) error {
	for _, budget := range budgets {
		if _, err := m.Upsert(budget); err != nil {
			return err
		}
	}
	return nil
}

// GetByPeriod returns budgets for a period joined with category names,
// sorted by category name
func (m *MockBudgetRepository) GetByPeriod(groupID uuid.UUID, periodKey string) ([]*domain.BudgetWithCategory, error) {
	var results []*domain.BudgetWithCategory
	for _, budget := range m.Budgets {
		if budget.GroupID != groupID || budget.PeriodKey != periodKey {
			continue
		}
		name := ""
		if m.Categories != nil {
			if category, err := m.Categories.GetByID(budget.CategoryID); err == nil {
				name = category.Name
			}
		}
		results = append(results, &domain.BudgetWithCategory{
			CategoryID:   budget.CategoryID,
			CategoryName: name,
			Amount:       budget.Amount,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CategoryName < results[j].CategoryName })
	return results, nil
}

// Delete deletes a budget
func (m *MockBudgetRepository) Delete(groupID uuid.UUID, categoryID uuid.UUID, periodKey string) error {
	key := budgetKey(groupID, categoryID, periodKey)
	if _, ok := m.Budgets[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.Budgets, key)
	return nil
}
