package arena

import (
	"context"

	"github.com/vkngwrapper/aliasptr/internal/utils"
	"github.com/vkngwrapper/core/v2/common"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific arena behaviors to activate or deactivate
type CreateFlags int32

var arenaCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	arenaCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return arenaCreateFlagsMapping.FlagsToString(f)
}

const (
	// CreateExternallySynchronized ensures that the arena will not be synchronized internally. The
	// consumer must guarantee it is used from only one goroutine at a time or is synchronized by some
	// other mechanism.
	CreateExternallySynchronized CreateFlags = 1 << iota
)

func init() {
	CreateExternallySynchronized.Register("CreateExternallySynchronized")
}

// CreateOptions contains optional settings when creating an arena
type CreateOptions struct {
	// Flags indicates specific arena behaviors to activate or deactivate
	Flags CreateFlags
	// InitialCapacity is the number of slots to reserve up front
	InitialCapacity int
}

// New creates an empty Arena. logger may be nil, in which case nothing is logged.
func New[T any](logger *slog.Logger, options CreateOptions) *Arena[T] {
	if logger == nil {
		logger = slog.New(discardHandler{})
	}

	capacity := options.InitialCapacity
	if capacity < 0 {
		capacity = 0
	}

	return &Arena[T]{
		mutex:       utils.NewOptionalRWMutex(options.Flags&CreateExternallySynchronized == 0),
		logger:      logger,
		createFlags: options.Flags,
		slots:       make([]*slot[T], 0, capacity),
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
