package dialogue

var greetings = []string{
	"Hello! I'm your study buddy bot. What's your name?",
	"Hi there! Great to see you. How can I help today?",
	"Hey! Ready to learn something new?",
}

var goodbyes = []string{
	"Bye! Keep learning and stay awesome!",
	"See you later. Good luck with your studies!",
	"Goodbye! Ping me anytime.",
}

var smalltalk = []string{
	"Totally noted.",
	"Got it!",
	"Interesting, tell me more.",
	"Thanks for sharing!",
	"I'm here to help. What's next?",
}

const (
	positiveSuffix    = " 😊"
	sympatheticReply  = "Sorry to hear that. Tell me more; maybe I can help."
	faqMissReply      = "I didn't find that topic. Try /help for supported FAQs."
	csvNotFoundReply  = "CSV not found. Please provide a valid path."
	summaryFallback   = "varied topics"
	summaryWindowSize = 20
)

const helpText = "Commands:\n" +
	"  /help                Show this help\n" +
	"  /setname Name        Save your name\n" +
	"  /loadcsv path.csv    Load a CSV and get insights\n" +
	"  /summary             Summarize our recent chat\n" +
	"  /export_history      Save conversation to a text file\n" +
	"  /reset               Clear memory (name & history)\n\n" +
	"Other features:\n" +
	"- Type 'sunk cost', 'NPV', 'CAPM', etc. for quick BBA FAQs\n" +
	"- Start a complaint (say 'I have a problem...') to open a support ticket\n" +
	"- Calculator: start with '=' or type 'calculate 2*(10+5)'\n" +
	"- Ask date/time, casual chat, and more!"
