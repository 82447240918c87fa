package constant

// Session modes. A session starts in auto mode and only leaves it when an
// operator takes over.
const (
	ChatModeAuto = "auto"
	ChatModeLive = "live"
)

// Message sender provenance.
const (
	ChatSenderGuest = "guest"
	ChatSenderBot   = "bot"
	ChatSenderAdmin = "admin"
)

// ChatSystemPromptV1 is prepended to every AI request together with the
// assembled content context.
const ChatSystemPromptV1 = `You are the friendly support assistant for a community organization.
Answer briefly and warmly, in at most three short sentences.
Only use facts from the CONTEXT section below; if you are unsure, say a team member will follow up.
When the context contains a link for something you mention, include that link.`

// ChatFallbackMessages is the pool of human-toned replies used when automated
// response generation fails. One is picked at random; the underlying provider
// error is only ever logged.
var ChatFallbackMessages = []string{
	"Thanks for reaching out! One of our team members will get back to you here shortly.",
	"I couldn't find a good answer right away, but a real person from our team will reply soon.",
	"Sorry, I'm having a little trouble at the moment. Someone from the team will pick this up!",
	"Good question! Let me pass this to one of our team members, they'll answer you right here.",
	"I'm not able to answer that just now. Hang tight, a team member will be with you soon.",
}
