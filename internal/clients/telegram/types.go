package telegram

import (
	"encoding/json"

	"github.com/finbuddy/finbuddy/internal/interfaces"
)

// apiResponse is the Bot API envelope around every method result
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

type getUpdatesRequest struct {
	Offset         int64    `json:"offset,omitempty"`
	Timeout        int      `json:"timeout,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

type sendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type answerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
}

type user struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

type chat struct {
	ID int64 `json:"id"`
}

type message struct {
	MessageID int64  `json:"message_id"`
	From      *user  `json:"from"`
	Chat      chat   `json:"chat"`
	Text      string `json:"text"`
}

type callbackQuery struct {
	ID      string   `json:"id"`
	From    user     `json:"from"`
	Message *message `json:"message"`
	Data    string   `json:"data"`
}

type update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *message       `json:"message"`
	CallbackQuery *callbackQuery `json:"callback_query"`
}

// toEvent converts a wire update into the transport-neutral event shape
// the bot consumes.
func (u update) toEvent() interfaces.Update {
	ev := interfaces.Update{ID: u.UpdateID}

	if u.Message != nil && u.Message.From != nil {
		ev.Message = &interfaces.InboundMessage{
			UserID:    u.Message.From.ID,
			ChatID:    u.Message.Chat.ID,
			FirstName: u.Message.From.FirstName,
			Text:      u.Message.Text,
		}
	}

	if u.CallbackQuery != nil {
		cb := &interfaces.CallbackQuery{
			ID:        u.CallbackQuery.ID,
			UserID:    u.CallbackQuery.From.ID,
			FirstName: u.CallbackQuery.From.FirstName,
			Data:      u.CallbackQuery.Data,
		}
		if u.CallbackQuery.Message != nil {
			cb.ChatID = u.CallbackQuery.Message.Chat.ID
		}
		ev.Callback = cb
	}

	return ev
}
