// Package testutil holds fakes shared by package tests.
package testutil

import (
	"reflect"
	"sync"

	telebot "gopkg.in/telebot.v3"
)

// Call records a Send or Edit made through FakeContext.
type Call struct {
	What interface{}
	Opts []interface{}
}

// Text returns the text payload of the call, or the caption of a media payload.
func (c Call) Text() string {
	switch v := c.What.(type) {
	case string:
		return v
	case *telebot.Photo:
		return v.Caption
	case *telebot.Video:
		return v.Caption
	default:
		return ""
	}
}

// Options returns the *telebot.SendOptions passed with the call, if any.
func (c Call) Options() *telebot.SendOptions {
	for _, opt := range c.Opts {
		if o, ok := opt.(*telebot.SendOptions); ok {
			return o
		}
	}
	return nil
}

// Markup returns the reply markup passed with the call, if any.
func (c Call) Markup() *telebot.ReplyMarkup {
	if o := c.Options(); o != nil {
		return o.ReplyMarkup
	}
	return nil
}

// FakeContext is an in-memory telebot.Context. Methods it does not override panic
// through the nil embedded interface. Edits that leave the tracked message unchanged
// fail with telebot.ErrSameMessageContent, as the Bot API does.
type FakeContext struct {
	telebot.Context

	User     *telebot.User
	Cb       *telebot.Callback
	Msg      string
	SendErr  error
	EditErr  error
	Sent     []Call
	Edited   []Call
	Answered []*telebot.CallbackResponse

	mu      sync.Mutex
	store   map[string]interface{}
	current *Call
}

// NewMessage builds a context for a text message from userID.
func NewMessage(userID int64, text string) *FakeContext {
	return &FakeContext{User: &telebot.User{ID: userID, FirstName: "Test"}, Msg: text}
}

// NewCallback builds a context for a button press carrying data from userID.
func NewCallback(userID int64, data string) *FakeContext {
	return &FakeContext{
		User: &telebot.User{ID: userID, FirstName: "Test"},
		Cb:   &telebot.Callback{ID: "cb", Data: data, Message: &telebot.Message{Text: "menu"}},
	}
}

// Press reuses the context for another button press on the same message.
func (f *FakeContext) Press(data string) *FakeContext {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg := &telebot.Message{Text: "menu"}
	if f.Cb != nil && f.Cb.Message != nil {
		msg = f.Cb.Message
	}
	f.Cb = &telebot.Callback{ID: "cb", Data: data, Message: msg}
	f.Msg = ""
	f.store = nil
	return f
}

func (f *FakeContext) Sender() *telebot.User       { return f.User }
func (f *FakeContext) Callback() *telebot.Callback { return f.Cb }

func (f *FakeContext) Text() string {
	if f.Cb != nil {
		return ""
	}
	return f.Msg
}

func (f *FakeContext) Message() *telebot.Message {
	if f.Cb != nil {
		return f.Cb.Message
	}
	return &telebot.Message{Text: f.Msg, Sender: f.User}
}

func (f *FakeContext) Send(what interface{}, opts ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SendErr != nil {
		return f.SendErr
	}
	call := Call{What: what, Opts: opts}
	f.Sent = append(f.Sent, call)
	f.current = &call
	return nil
}

func (f *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Cb == nil {
		return telebot.ErrBadContext
	}
	if f.EditErr != nil {
		return f.EditErr
	}

	call := Call{What: what, Opts: opts}
	if f.current != nil && call.Text() == f.current.Text() && reflect.DeepEqual(call.Markup(), f.current.Markup()) {
		return telebot.ErrSameMessageContent
	}
	f.Edited = append(f.Edited, call)
	f.current = &call
	return nil
}

func (f *FakeContext) Respond(resp ...*telebot.CallbackResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(resp) == 0 {
		f.Answered = append(f.Answered, &telebot.CallbackResponse{})
		return nil
	}
	f.Answered = append(f.Answered, resp...)
	return nil
}

func (f *FakeContext) Get(key string) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store[key]
}

func (f *FakeContext) Set(key string, val interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.store == nil {
		f.store = make(map[string]interface{})
	}
	f.store[key] = val
}

// LastSent returns the most recent Send call.
func (f *FakeContext) LastSent() (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Sent) == 0 {
		return Call{}, false
	}
	return f.Sent[len(f.Sent)-1], true
}

// LastEdited returns the most recent Edit call.
func (f *FakeContext) LastEdited() (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Edited) == 0 {
		return Call{}, false
	}
	return f.Edited[len(f.Edited)-1], true
}

// CallbackData flattens the inline keyboard of markup into callback data or "url:" entries.
func CallbackData(markup *telebot.ReplyMarkup) [][]string {
	if markup == nil {
		return nil
	}
	out := make([][]string, len(markup.InlineKeyboard))
	for i, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.URL != "" {
				out[i] = append(out[i], "url:"+btn.URL)
				continue
			}
			out[i] = append(out[i], btn.Data)
		}
	}
	return out
}
