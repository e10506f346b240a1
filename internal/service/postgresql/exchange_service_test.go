package service

import (
	"sync"
	"testing"

	entity "campusx/internal/domain"
	repo "campusx/internal/repository/postgresql"
	"campusx/internal/statemachine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeExchangeRepo serializes Transact calls with a mutex the way the real
// repository serializes them with row locks.
type fakeExchangeRepo struct {
	mu        sync.Mutex
	exchanges map[uuid.UUID]*entity.Exchange
	items     map[uuid.UUID]*entity.Item

	// itemCompletions counts transitions of an item to completed so tests
	// can assert the completion side effect applies exactly once.
	itemCompletions int
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{
		exchanges: make(map[uuid.UUID]*entity.Exchange),
		items:     make(map[uuid.UUID]*entity.Item),
	}
}

func (f *fakeExchangeRepo) CreateExchangeTransaction(ex *entity.Exchange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[ex.ItemID]
	if !ok {
		return repo.ErrItemNotFound
	}
	if item.Status != entity.ItemAvailable {
		return repo.ErrItemUnavailable
	}
	cp := *ex
	f.exchanges[ex.ID] = &cp
	item.Status = entity.ItemPending
	return nil
}

func (f *fakeExchangeRepo) GetByID(id uuid.UUID) (*entity.Exchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.exchanges[id]
	if !ok {
		return nil, nil
	}
	cp := *ex
	return &cp, nil
}

func (f *fakeExchangeRepo) GetByOwnerID(ownerID uuid.UUID) ([]entity.Exchange, error) {
	return f.filter(func(ex *entity.Exchange) bool { return ex.OwnerID == ownerID })
}

func (f *fakeExchangeRepo) GetByRequesterID(requesterID uuid.UUID) ([]entity.Exchange, error) {
	return f.filter(func(ex *entity.Exchange) bool { return ex.RequesterID == requesterID })
}

func (f *fakeExchangeRepo) filter(keep func(*entity.Exchange) bool) ([]entity.Exchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Exchange
	for _, ex := range f.exchanges {
		if keep(ex) {
			out = append(out, *ex)
		}
	}
	return out, nil
}

func (f *fakeExchangeRepo) Transact(exchangeID uuid.UUID, fn repo.ExchangeTxFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ex, ok := f.exchanges[exchangeID]
	if !ok {
		return repo.ErrExchangeNotFound
	}
	item, ok := f.items[ex.ItemID]
	if !ok {
		return repo.ErrItemNotFound
	}

	exCopy := *ex
	itemCopy := *item
	if err := fn(&exCopy, &itemCopy); err != nil {
		return err
	}
	if item.Status != entity.ItemCompleted && itemCopy.Status == entity.ItemCompleted {
		f.itemCompletions++
	}
	*ex = exCopy
	*item = itemCopy
	return nil
}

// fakeItemRepo backs the read-only item lookups of the exchange service.
type fakeItemRepo struct {
	items map[uuid.UUID]*entity.Item
}

func (f *fakeItemRepo) CreateItem(item *entity.Item) error              { f.items[item.ID] = item; return nil }
func (f *fakeItemRepo) CreateItemImage(*entity.ItemImage) error         { return nil }
func (f *fakeItemRepo) GetImages(uuid.UUID) ([]entity.ItemImage, error) { return nil, nil }
func (f *fakeItemRepo) List(entity.ItemFilter) ([]entity.Item, error)   { return nil, nil }
func (f *fakeItemRepo) GetByOwnerID(uuid.UUID) ([]entity.Item, error)   { return nil, nil }
func (f *fakeItemRepo) Update(*entity.Item) error                       { return nil }
func (f *fakeItemRepo) UpdateStatus(id uuid.UUID, status entity.ItemStatus) error {
	if item, ok := f.items[id]; ok {
		item.Status = status
	}
	return nil
}
func (f *fakeItemRepo) GetByID(id uuid.UUID) (*entity.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

type fakeLogRepo struct {
	mu        sync.Mutex
	histories []entity.HistoryStatus
	activity  []entity.ActivityLog
}

func (f *fakeLogRepo) SaveHistoryStatus(doc *entity.HistoryStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histories = append(f.histories, *doc)
	return nil
}

func (f *fakeLogRepo) SaveActivityLog(doc *entity.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activity = append(f.activity, *doc)
	return nil
}

type sentNote struct {
	userID   uuid.UUID
	title    string
	notiType string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []sentNote
}

func (r *recordingNotifier) Notify(userID uuid.UUID, title, message, notiType string, relatedID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, sentNote{userID: userID, title: title, notiType: notiType})
}

func (r *recordingNotifier) sentTo(userID uuid.UUID) []sentNote {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []sentNote
	for _, n := range r.notes {
		if n.userID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fixture struct {
	service      *ExchangeService
	exchangeRepo *fakeExchangeRepo
	itemRepo     *fakeItemRepo
	logRepo      *fakeLogRepo
	notifier     *recordingNotifier

	ownerID     uuid.UUID
	requesterID uuid.UUID
	itemID      uuid.UUID
	exchangeID  uuid.UUID
}

// newFixture seeds one exchange in the given status with its reserved item.
func newFixture(t *testing.T, status entity.ExchangeStatus) *fixture {
	t.Helper()
	f := &fixture{
		exchangeRepo: newFakeExchangeRepo(),
		logRepo:      &fakeLogRepo{},
		notifier:     &recordingNotifier{},
		ownerID:      uuid.New(),
		requesterID:  uuid.New(),
		itemID:       uuid.New(),
		exchangeID:   uuid.New(),
	}
	f.itemRepo = &fakeItemRepo{items: f.exchangeRepo.items}

	itemStatus := entity.ItemPending
	f.exchangeRepo.items[f.itemID] = &entity.Item{
		ID:      f.itemID,
		OwnerID: f.ownerID,
		Title:   "calculus textbook",
		Status:  itemStatus,
	}
	f.exchangeRepo.exchanges[f.exchangeID] = &entity.Exchange{
		ID:          f.exchangeID,
		ItemID:      f.itemID,
		ItemTitle:   "calculus textbook",
		OwnerID:     f.ownerID,
		RequesterID: f.requesterID,
		Status:      status,
	}

	f.service = NewExchangeService(f.exchangeRepo, f.itemRepo, f.logRepo, f.notifier, zap.NewNop().Sugar())
	return f
}

func (f *fixture) exchange(t *testing.T) *entity.Exchange {
	t.Helper()
	ex, err := f.exchangeRepo.GetByID(f.exchangeID)
	require.NoError(t, err)
	require.NotNil(t, ex)
	return ex
}

func (f *fixture) item(t *testing.T) *entity.Item {
	t.Helper()
	item, err := f.itemRepo.GetByID(f.itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

func TestCreateExchange(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)
	otherItem := uuid.New()
	f.exchangeRepo.items[otherItem] = &entity.Item{
		ID:      otherItem,
		OwnerID: f.ownerID,
		Title:   "desk lamp",
		Status:  entity.ItemAvailable,
	}

	ex, err := f.service.Create(f.requesterID, entity.CreateExchangeInput{ItemID: otherItem.String()})
	require.NoError(t, err)
	assert.Equal(t, entity.ExchangePending, ex.Status)
	assert.Equal(t, f.ownerID, ex.OwnerID)
	assert.Equal(t, "desk lamp", ex.ItemTitle)

	item, _ := f.itemRepo.GetByID(otherItem)
	assert.Equal(t, entity.ItemPending, item.Status)

	notes := f.notifier.sentTo(f.ownerID)
	require.Len(t, notes, 1)
	assert.Equal(t, "exchange_request", notes[0].notiType)
}

func TestCreateExchange_OwnItem(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)
	ownItem := uuid.New()
	f.exchangeRepo.items[ownItem] = &entity.Item{ID: ownItem, OwnerID: f.requesterID, Status: entity.ItemAvailable}

	_, err := f.service.Create(f.requesterID, entity.CreateExchangeInput{ItemID: ownItem.String()})
	assert.ErrorIs(t, err, ErrOwnItem)
}

func TestRespondAccept(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)

	result, err := f.service.Respond(f.ownerID, f.exchangeID, entity.ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, entity.ActionAccept, result.Action)
	assert.Equal(t, entity.ExchangeInProgress, result.Status)

	ex := f.exchange(t)
	assert.Equal(t, entity.ExchangeInProgress, ex.Status)
	assert.False(t, ex.OwnerConfirmed)
	assert.False(t, ex.RequesterConfirmed)

	notes := f.notifier.sentTo(f.requesterID)
	require.Len(t, notes, 1)
	assert.Equal(t, "exchange_response", notes[0].notiType)
	require.Len(t, f.logRepo.histories, 1)
	assert.Equal(t, "in_progress", f.logRepo.histories[0].NewStatus)
}

func TestRespondReject_ReleasesItem(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)

	result, err := f.service.Respond(f.ownerID, f.exchangeID, entity.ActionReject)
	require.NoError(t, err)
	assert.Equal(t, entity.ExchangeRejected, result.Status)

	assert.Equal(t, entity.ExchangeRejected, f.exchange(t).Status)
	assert.Equal(t, entity.ItemAvailable, f.item(t).Status)
}

func TestRespond_NonOwnerForbidden(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)

	_, err := f.service.Respond(f.requesterID, f.exchangeID, entity.ActionAccept)
	assert.ErrorIs(t, err, ErrOnlyOwner)
	assert.Equal(t, entity.ExchangePending, f.exchange(t).Status)
	assert.Empty(t, f.notifier.notes)
}

func TestRespond_NotFound(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)

	_, err := f.service.Respond(f.ownerID, uuid.New(), entity.ActionAccept)
	assert.ErrorIs(t, err, ErrExchangeNotFound)
}

func TestRespond_TerminalState(t *testing.T) {
	f := newFixture(t, entity.ExchangeRejected)

	_, err := f.service.Respond(f.ownerID, f.exchangeID, entity.ActionAccept)
	var tErr *statemachine.TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.True(t, tErr.Terminal)
}

func TestConfirm_Sequential(t *testing.T) {
	f := newFixture(t, entity.ExchangeInProgress)

	result, err := f.service.Confirm(f.ownerID, f.exchangeID, entity.RoleOwner)
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, entity.ExchangeInProgress, result.Status)

	ex := f.exchange(t)
	assert.True(t, ex.OwnerConfirmed)
	assert.False(t, ex.RequesterConfirmed)
	// the requester is prompted to confirm their side
	require.Len(t, f.notifier.sentTo(f.requesterID), 1)

	result, err = f.service.Confirm(f.requesterID, f.exchangeID, entity.RoleRequester)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, entity.ExchangeCompleted, result.Status)

	assert.Equal(t, entity.ExchangeCompleted, f.exchange(t).Status)
	assert.Equal(t, entity.ItemCompleted, f.item(t).Status)
	// both parties hear about completion
	assert.Len(t, f.notifier.sentTo(f.ownerID), 1)
	assert.Len(t, f.notifier.sentTo(f.requesterID), 2)
}

func TestConfirm_LegacyAcceptedStatus(t *testing.T) {
	f := newFixture(t, entity.ExchangeAccepted)

	result, err := f.service.Confirm(f.ownerID, f.exchangeID, entity.RoleOwner)
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.True(t, f.exchange(t).OwnerConfirmed)
}

func TestConfirm_RoleMismatch(t *testing.T) {
	f := newFixture(t, entity.ExchangeInProgress)

	_, err := f.service.Confirm(f.requesterID, f.exchangeID, entity.RoleOwner)
	assert.ErrorIs(t, err, ErrRoleMismatch)
	assert.False(t, f.exchange(t).OwnerConfirmed)
}

func TestConfirm_FromPending(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)

	_, err := f.service.Confirm(f.ownerID, f.exchangeID, entity.RoleOwner)
	var sErr *InvalidStateError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, entity.ExchangePending, sErr.Status)
	assert.Contains(t, err.Error(), "pending")
}

func TestConfirm_AfterCompleted(t *testing.T) {
	f := newFixture(t, entity.ExchangeCompleted)

	_, err := f.service.Confirm(f.ownerID, f.exchangeID, entity.RoleOwner)
	var sErr *InvalidStateError
	require.ErrorAs(t, err, &sErr)
	assert.Contains(t, err.Error(), "completed")
}

// Both parties confirm at the same moment: exactly one transaction may
// observe "both confirmed" and apply the item completion write.
func TestConfirm_ConcurrentRace(t *testing.T) {
	f := newFixture(t, entity.ExchangeInProgress)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := f.service.Confirm(f.ownerID, f.exchangeID, entity.RoleOwner)
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := f.service.Confirm(f.requesterID, f.exchangeID, entity.RoleRequester)
		assert.NoError(t, err)
	}()
	wg.Wait()

	assert.Equal(t, entity.ExchangeCompleted, f.exchange(t).Status)
	assert.Equal(t, entity.ItemCompleted, f.item(t).Status)
	assert.Equal(t, 1, f.exchangeRepo.itemCompletions)
}

func TestCancel_PendingByRequester(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)

	status, err := f.service.Cancel(f.requesterID, f.exchangeID)
	require.NoError(t, err)
	assert.Equal(t, entity.ExchangeCancelled, status)
	assert.Equal(t, entity.ItemAvailable, f.item(t).Status)
	require.Len(t, f.notifier.sentTo(f.ownerID), 1)
}

func TestCancel_PendingByOwnerForbidden(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)

	_, err := f.service.Cancel(f.ownerID, f.exchangeID)
	assert.ErrorIs(t, err, ErrCancelNotAllowed)
	assert.Equal(t, entity.ExchangePending, f.exchange(t).Status)
}

func TestCancel_InProgressByEitherParty(t *testing.T) {
	for _, caller := range []string{"owner", "requester"} {
		f := newFixture(t, entity.ExchangeInProgress)
		callerID := f.ownerID
		if caller == "requester" {
			callerID = f.requesterID
		}

		status, err := f.service.Cancel(callerID, f.exchangeID)
		require.NoError(t, err, caller)
		assert.Equal(t, entity.ExchangeCancelled, status)
		assert.Equal(t, entity.ItemAvailable, f.item(t).Status)
	}
}

func TestCancel_NonParticipant(t *testing.T) {
	f := newFixture(t, entity.ExchangeInProgress)

	_, err := f.service.Cancel(uuid.New(), f.exchangeID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestGetDetail_AllowedActions(t *testing.T) {
	f := newFixture(t, entity.ExchangePending)

	detail, err := f.service.GetDetail(f.ownerID, f.exchangeID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, detail.Role)
	assert.ElementsMatch(t, []entity.ExchangeAction{entity.ActionAccept, entity.ActionReject}, detail.AllowedActions)

	detail, err = f.service.GetDetail(f.requesterID, f.exchangeID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRequester, detail.Role)
	assert.ElementsMatch(t, []entity.ExchangeAction{entity.ActionCancel}, detail.AllowedActions)

	_, err = f.service.GetDetail(uuid.New(), f.exchangeID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}
