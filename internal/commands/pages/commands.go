package pagescmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	duplicatePageMessageType = "pagebuilder.pages.duplicate"
	togglePageMessageType    = "pagebuilder.pages.toggle_publish"
	deletePageMessageType    = "pagebuilder.pages.delete"
)

// pageTarget is shared by the lifecycle commands. Actor, when set, replaces
// whatever actor the caller context carries.
type pageTarget struct {
	PageID string `json:"page_id"`
	Actor  string `json:"actor,omitempty"`
}

func (m pageTarget) validate(prefix string) error {
	return validation.Errors{
		"page_id": validation.Validate(strings.TrimSpace(m.PageID),
			validation.Required.ErrorObject(validation.NewError(prefix+".page_id_required", "page_id is required"))),
	}.Filter()
}

func (m pageTarget) context(ctx context.Context) context.Context {
	if actor := strings.TrimSpace(m.Actor); actor != "" {
		return identity.WithActor(ctx, actor)
	}
	return ctx
}

func (m pageTarget) fields() map[string]any {
	fields := map[string]any{"page_id": m.PageID}
	if m.Actor != "" {
		fields["actor"] = m.Actor
	}
	return fields
}

// DuplicatePageCommand copies a page into a new draft. When Result is set it
// receives the id of the copy.
type DuplicatePageCommand struct {
	pageTarget
	Result *string `json:"-"`
}

func (DuplicatePageCommand) Type() string { return duplicatePageMessageType }

func (m DuplicatePageCommand) Validate() error { return m.validate(duplicatePageMessageType) }

// TogglePublishPageCommand flips a page between draft and published.
type TogglePublishPageCommand struct {
	pageTarget
}

func (TogglePublishPageCommand) Type() string { return togglePageMessageType }

func (m TogglePublishPageCommand) Validate() error { return m.validate(togglePageMessageType) }

// DeletePageCommand removes a page permanently.
type DeletePageCommand struct {
	pageTarget
}

func (DeletePageCommand) Type() string { return deletePageMessageType }

func (m DeletePageCommand) Validate() error { return m.validate(deletePageMessageType) }

func NewDuplicatePageCommand(pageID, actor string) DuplicatePageCommand {
	return DuplicatePageCommand{pageTarget: pageTarget{PageID: pageID, Actor: actor}}
}

func NewTogglePublishPageCommand(pageID, actor string) TogglePublishPageCommand {
	return TogglePublishPageCommand{pageTarget: pageTarget{PageID: pageID, Actor: actor}}
}

func NewDeletePageCommand(pageID, actor string) DeletePageCommand {
	return DeletePageCommand{pageTarget: pageTarget{PageID: pageID, Actor: actor}}
}

// Handlers bundles the page lifecycle command handlers.
type Handlers struct {
	Duplicate     *commands.Handler[DuplicatePageCommand]
	TogglePublish *commands.Handler[TogglePublishPageCommand]
	Delete        *commands.Handler[DeletePageCommand]
}

// NewHandlers wires every lifecycle command to service.
func NewHandlers(service pages.Service, logger interfaces.Logger) Handlers {
	logger = logging.Ensure(logger)
	return Handlers{
		Duplicate: commands.NewHandler(func(ctx context.Context, msg DuplicatePageCommand) error {
			id, err := service.Duplicate(msg.context(ctx), msg.PageID)
			if err != nil {
				return err
			}
			if msg.Result != nil {
				*msg.Result = id
			}
			return nil
		},
			commands.WithLogger[DuplicatePageCommand](logger),
			commands.WithOperation[DuplicatePageCommand]("pages.duplicate"),
			commands.WithMessageFields(func(msg DuplicatePageCommand) map[string]any { return msg.fields() }),
		),
		TogglePublish: commands.NewHandler(func(ctx context.Context, msg TogglePublishPageCommand) error {
			return service.TogglePublish(msg.context(ctx), msg.PageID)
		},
			commands.WithLogger[TogglePublishPageCommand](logger),
			commands.WithOperation[TogglePublishPageCommand]("pages.toggle_publish"),
			commands.WithMessageFields(func(msg TogglePublishPageCommand) map[string]any { return msg.fields() }),
		),
		Delete: commands.NewHandler(func(ctx context.Context, msg DeletePageCommand) error {
			return service.Delete(msg.context(ctx), msg.PageID)
		},
			commands.WithLogger[DeletePageCommand](logger),
			commands.WithOperation[DeletePageCommand]("pages.delete"),
			commands.WithMessageFields(func(msg DeletePageCommand) map[string]any { return msg.fields() }),
		),
	}
}
