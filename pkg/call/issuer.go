package call

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/gmvoice/internal/errors"
)

const (
	// DefaultRoomPrefix names rooms "<prefix>_<random>".
	DefaultRoomPrefix = "voice_assistant_room"

	// DefaultIdentityPrefix names participants "<prefix>_<random>".
	DefaultIdentityPrefix = "voice_assistant_user"

	// DefaultParticipantName is the display name when none is requested.
	DefaultParticipantName = "user"

	// DefaultTokenTTL is the participant token lifetime.
	DefaultTokenTTL = 15 * time.Minute
)

// Config configures an Issuer.
type Config struct {
	ServerURL  string
	APIKey     string
	APISecret  string
	RoomPrefix string
	TokenTTL   time.Duration
}

// Request carries caller preferences. Room and identity are always
// generated by the issuer and cannot be chosen by the caller.
type Request struct {
	ParticipantName string `json:"participantName,omitempty"`
}

// ConnectionDetails is everything the browser needs to join the room.
type ConnectionDetails struct {
	ServerURL        string `json:"serverUrl"`
	RoomName         string `json:"roomName"`
	ParticipantName  string `json:"participantName"`
	ParticipantToken string `json:"participantToken"`
}

// VideoGrant is the room permission claim.
type VideoGrant struct {
	Room           string `json:"room,omitempty"`
	RoomJoin       bool   `json:"roomJoin,omitempty"`
	CanPublish     bool   `json:"canPublish"`
	CanPublishData bool   `json:"canPublishData"`
	CanSubscribe   bool   `json:"canSubscribe"`
}

// Claims is the participant token payload.
type Claims struct {
	jwt.RegisteredClaims
	Name  string      `json:"name,omitempty"`
	Video *VideoGrant `json:"video,omitempty"`
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Issuer) { i.logger = logger }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(i *Issuer) { i.tracer = tp.Tracer("gmvoice/call") }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// WithIDGenerator overrides the random suffix generator.
func WithIDGenerator(gen func() string) Option {
	return func(i *Issuer) { i.newID = gen }
}

// Issuer signs participant tokens.
type Issuer struct {
	config Config
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

// NewIssuer creates an Issuer. Credentials are checked on each Issue, so
// a server without them still starts and reports E201 per request.
func NewIssuer(config Config, opts ...Option) *Issuer {
	if config.RoomPrefix == "" {
		config.RoomPrefix = DefaultRoomPrefix
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = DefaultTokenTTL
	}
	i := &Issuer{
		config: config,
		logger: slog.Default(),
		tracer: otel.Tracer("gmvoice/call"),
		now:    time.Now,
		newID:  shortID,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = i.logger.With("component", "call")
	return i
}

// Configured reports whether all credentials are present.
func (i *Issuer) Configured() bool {
	return i.missing() == ""
}

func (i *Issuer) missing() string {
	var names []string
	if i.config.ServerURL == "" {
		names = append(names, "LIVEKIT_URL")
	}
	if i.config.APIKey == "" {
		names = append(names, "LIVEKIT_API_KEY")
	}
	if i.config.APISecret == "" {
		names = append(names, "LIVEKIT_API_SECRET")
	}
	return strings.Join(names, ", ")
}

// Issue creates a room name and participant identity and signs a token
// granting access to that room.
func (i *Issuer) Issue(ctx context.Context, req Request) (*ConnectionDetails, error) {
	_, span := i.tracer.Start(ctx, "call.issue")
	defer span.End()

	if missing := i.missing(); missing != "" {
		err := errors.New("E201").
			WithDetail(missing + " not set").
			WithSuggestion("Set the call section of gmvoice.json or the LIVEKIT_* environment variables")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	room := i.config.RoomPrefix + "_" + i.newID()
	identity := DefaultIdentityPrefix + "_" + i.newID()
	name := req.ParticipantName
	if name == "" {
		name = DefaultParticipantName
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.config.APIKey,
			Subject:   identity,
			ID:        identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.config.TokenTTL)),
		},
		Name: name,
		Video: &VideoGrant{
			Room:           room,
			RoomJoin:       true,
			CanPublish:     true,
			CanPublishData: true,
			CanSubscribe:   true,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.config.APISecret))
	if err != nil {
		wrapped := errors.New("E202").Wrap(err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())
		return nil, wrapped
	}

	span.SetAttributes(
		attribute.String("call.room", room),
		attribute.String("call.identity", identity),
	)
	span.SetStatus(codes.Ok, "")
	i.logger.Info("issued connection details", "room", room, "identity", identity)

	return &ConnectionDetails{
		ServerURL:        i.config.ServerURL,
		RoomName:         room,
		ParticipantName:  name,
		ParticipantToken: token,
	}, nil
}

// Verify parses a token signed by this issuer and returns its claims.
func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf(errors.CategoryCall, "unexpected signing method %v", t.Header["alg"])
		}
		return []byte(i.config.APISecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
