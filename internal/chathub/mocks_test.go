package chathub_test

import (
	"chatmate/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
// It uses testify/mock to allow flexible expectation setting in tests.
type MockStorage struct {
	mock.Mock

	// Events feeds SubscribeEvents so tests can inject pub/sub traffic.
	Events chan models.ChatEvent
}

func newMockStorage() *MockStorage {
	return &MockStorage{Events: make(chan models.ChatEvent, 10)}
}

// User operations
func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateLastLogin(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) ListUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// Friendship operations
func (m *MockStorage) CreateFriendRequest(req *models.FriendRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockStorage) FindPendingRequestBetween(userA, userB string) (*models.FriendRequest, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockStorage) ListIncomingRequests(receiverID string) ([]models.IncomingRequest, error) {
	args := m.Called(receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IncomingRequest), args.Error(1)
}

func (m *MockStorage) AcceptFriendRequest(requestID uint, receiverID string) (*models.FriendRequest, error) {
	args := m.Called(requestID, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockStorage) DeclineFriendRequest(requestID uint, receiverID string) (*models.FriendRequest, error) {
	args := m.Called(requestID, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockStorage) FriendshipExists(userA, userB string) (bool, error) {
	args := m.Called(userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) ListFriends(userID string) ([]models.Friend, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Friend), args.Error(1)
}

// Message operations
func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetConversation(userA, userB string) ([]models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) CountMessages() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// Pub/sub operations
func (m *MockStorage) PublishEvent(event models.ChatEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockStorage) SubscribeEvents() <-chan models.ChatEvent {
	return m.Events
}

// MockClient is a test double for the chathub.Client interface.
type MockClient struct {
	userID      string
	RecvChannel chan models.ChatEvent
	closed      bool
}

func newMockClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.ChatEvent, 10),
	}
}

// newSlowMockClient has no buffer, so any delivery attempt overflows.
func newSlowMockClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.ChatEvent),
	}
}

func (c *MockClient) GetUserID() string {
	return c.userID
}

func (c *MockClient) GetSendChannel() chan<- models.ChatEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {}

func (c *MockClient) Close() {
	c.closed = true
}

// DrainEvents empties the receive channel (for test cleanup and counting).
func (c *MockClient) DrainEvents() []models.ChatEvent {
	var events []models.ChatEvent
	for {
		select {
		case event := <-c.RecvChannel:
			events = append(events, event)
		default:
			return events
		}
	}
}
