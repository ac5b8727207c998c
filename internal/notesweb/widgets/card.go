package widgets

import "context"

// CardAction - действие пользователя в карточке заметки.
type CardAction string

// Действия карточки.
const (
	ActionArchive CardAction = "archive"
	ActionDelete  CardAction = "delete"
)

// CardActions выполняет действия карточки. Реализуется SyncController.
type CardActions interface {
	Archive(ctx context.Context, id string)
	Remove(ctx context.Context, id string)
}

// DispatchCardAction вызывает обработчик действия для заметки id и сообщает,
// был ли он вызван. Отсутствующий обработчик, неизвестное действие или пустой id
// ничего не делают.
func DispatchCardAction(ctx context.Context, actions CardActions, action CardAction, id string) bool {
	if actions == nil || id == "" {
		return false
	}
	switch action {
	case ActionArchive:
		actions.Archive(ctx, id)
	case ActionDelete:
		actions.Remove(ctx, id)
	default:
		return false
	}
	return true
}
