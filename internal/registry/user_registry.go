package registry

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/toyz/userregistry/internal/errors"
	"github.com/toyz/userregistry/internal/models"
	"github.com/toyz/userregistry/internal/utils"
)

const (
	// IDPrefix starts every generated user ID
	IDPrefix = "usr_"
	// idHexLength is the number of hex characters after the prefix (16^8 ids)
	idHexLength = 8
	// maxIDAttempts bounds regeneration when a generated ID is already taken
	maxIDAttempts = 16
)

// EmailPattern is the accepted email shape: local@domain.tld with a TLD of
// at least two letters.
const EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

// IDGenerator produces candidate user IDs
type IDGenerator func() (string, error)

// Observer is notified of registry activity. Implementations must be safe
// for concurrent use.
type Observer interface {
	UserCreated(size int)
	UserInserted(size int)
	CreateRejected(reason string)
}

type nopObserver struct{}

func (nopObserver) UserCreated(int)       {}
func (nopObserver) UserInserted(int)      {}
func (nopObserver) CreateRejected(string) {}

// Option configures a UserRegistry
type Option func(*UserRegistry)

// WithIDGenerator replaces the random ID generator
func WithIDGenerator(gen IDGenerator) Option {
	return func(r *UserRegistry) { r.newID = gen }
}

// WithLogger sets the logger used for registry events
func WithLogger(logger *slog.Logger) Option {
	return func(r *UserRegistry) { r.logger = logger }
}

// WithObserver registers an observer for created and rejected users
func WithObserver(observer Observer) Option {
	return func(r *UserRegistry) { r.observer = observer }
}

// UserRegistry is the in-memory store of users keyed by ID. It is safe for
// concurrent use; iteration order is insertion order.
type UserRegistry struct {
	users     *utils.Registry[string, models.User]
	validator *utils.ValidatorChain[models.CreateUserRequest]
	newID     IDGenerator
	logger    *slog.Logger
	observer  Observer
}

// New creates an empty registry
func New(opts ...Option) *UserRegistry {
	r := &UserRegistry{
		users: utils.NewRegistry[string, models.User](),
		validator: utils.NewValidatorChain(
			utils.Field(func(req models.CreateUserRequest) string { return req.Name },
				utils.NotBlank(apperrors.ErrNameEmpty)),
			utils.Field(func(req models.CreateUserRequest) string { return req.Email },
				utils.MatchesRegex(EmailPattern, apperrors.ErrInvalidEmail)),
		),
		newID:    RandomID,
		logger:   slog.New(slog.DiscardHandler),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RandomID returns usr_ followed by the first eight hex characters of a
// random UUID.
func RandomID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return IDPrefix + strings.ReplaceAll(id.String(), "-", "")[:idHexLength], nil
}

// Create validates req, assigns a fresh ID and stores the user
func (r *UserRegistry) Create(req models.CreateUserRequest) (models.User, error) {
	if err := r.validator.Validate(req); err != nil {
		reason := "invalid"
		var validationErr *apperrors.ValidationError
		if apperrors.As(err, &validationErr) {
			reason = validationErr.Field
		}
		r.observer.CreateRejected(reason)
		r.logger.Debug("rejected user", "reason", reason, "error", err)
		return models.User{}, err
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := r.newID()
		if err != nil {
			return models.User{}, apperrors.WrapWithOperation(apperrors.IDGenerationErrorCode, "generate", "user id", err)
		}

		user := models.User{ID: id, Name: req.Name, Email: req.Email}
		if r.users.RegisterIfAbsent(id, user) {
			size := r.users.Size()
			r.observer.UserCreated(size)
			r.logger.Info("created user", "id", id, "size", size)
			return user, nil
		}
		r.logger.Warn("user id collision, regenerating", "id", id, "attempt", attempt+1)
	}

	return models.User{}, apperrors.Newf(apperrors.IDGenerationErrorCode,
		"could not allocate a unique user id after %d attempts", maxIDAttempts)
}

// Get returns the user with id and whether it exists
func (r *UserRegistry) Get(id string) (models.User, bool) {
	return r.users.Get(id)
}

// Insert stores user as given, replacing any user with the same ID. No
// validation is performed; it is meant for seeding and tests.
func (r *UserRegistry) Insert(user models.User) {
	r.users.Register(user.ID, user)
	size := r.users.Size()
	r.observer.UserInserted(size)
	r.logger.Debug("inserted user", "id", user.ID, "size", size)
}

// List returns at most limit users starting at offset, in insertion order.
// Negative limit or offset is rejected with InvalidInput.
func (r *UserRegistry) List(limit, offset int) ([]models.User, error) {
	if err := utils.NonNegative("limit")(limit); err != nil {
		return nil, err
	}
	if err := utils.NonNegative("offset")(offset); err != nil {
		return nil, err
	}
	return r.users.Window(offset, limit), nil
}

// Len returns the number of stored users
func (r *UserRegistry) Len() int {
	return r.users.Size()
}
