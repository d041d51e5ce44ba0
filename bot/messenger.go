package bot

import "Pictor/styles"

// Messenger is the outbound side of the chat platform
type Messenger interface {
	SendText(chatId int64, text string) error
	SendMarkdown(chatId int64, text string) error
	SendOptions(chatId int64, text string, options []styles.Option) error
	SendPhoto(chatId int64, url string, caption string) error
	AnswerCallback(callbackId string) error
}
