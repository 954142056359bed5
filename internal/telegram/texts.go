package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main menu button labels. Free text matching one of these is routed like
// the corresponding command, never treated as QR input.
const (
	btnGenerate = "🌀 Generate QR Code"
	btnHistory  = "📅 History"
	btnAbout    = "ℹ️ About"
	btnPrivacy  = "🔒 Privacy & Policies"
	btnContact  = "📞 Contact"
	btnHelp     = "🆘 Help"
	btnBack     = "🔙 Back"
)

// UI texts
const (
	startText = "👋 Welcome!\n\n" +
		"You can use your text to generate a QR code with this bot.\n\n" +
		"⬇️ The bot menu is below."
	menuText = "📋 This is the main menu. Please select an option below:"

	generateStartText = "Now you can send text — the bot will generate a QR code for it.\n" +
		"Use /stop at any time to leave QR generation mode."
	stopText          = "🛑 QR generation has been stopped."
	notGeneratingText = "⚠️ You are not currently in QR generation mode."
	promptStartText   = "⚠️ Please press the 🌀 Generate QR Code button in the menu or use /generate to start."

	rejectionText = "❌ Content rejected.\n" +
		"This bot does not allow QR codes for illegal, harmful or fraudulent content (including scams and phishing).\n" +
		"Please adhere to the Terms of Use."

	generatingText   = "⏳ Please wait, generating QR code..."
	encodeFailedText = "❌ QR code generation failed. Please try again."
	storeFailedText  = "❌ Service temporarily unavailable. Please try again later."

	cooldownWaitFmt = "❕ Please wait another %d seconds."
	dailyLimitFmt   = "🛑 Daily limit reached. You have already generated %d QR codes today. Please return tomorrow."
	historyCountFmt = "📅 You have generated %d / %d QR codes today."
	qrCaptionFmt    = "✅ QR code generated.\n\n📝 Text: %s"

	countdownFmt      = "⏱️ Please wait %d seconds to generate another QR code."
	countdownDoneText = "✅ You can generate another QR code now. Send text to continue."

	whyCooldownFmt = "⏱️ Soft limit (%d seconds): keeps the server stable and usage fair by preventing request bursts."
	whyDailyFmt    = "📅 Daily limit (%d QR): caps generation per day to control spam and keep the service available to everyone."

	notAdminText        = "🚫 You are not admin!"
	notAuthorizedText   = "🚫 You are not authorized."
	noHistoryTodayText  = "No history data stored today."
	historyReadFailText = "❌ Could not read history."

	purgeAllPromptText    = "⚠️ Delete ALL rows of the history table? This cannot be undone!"
	purgePercentPromptFmt = "⚠️ Delete the oldest %d%% of history? This cannot be undone!"
	purgeRunningFmt       = "⏳ Deleting the oldest %d%% of history..."
	purgeAllDoneText      = "✅ History cleaned! All records have been deleted."
	purgePercentDoneFmt   = "✅ History cleaned! The oldest %d%% (%d records) have been deleted."
	purgeFailedText       = "❌ A history clean operation error occurred."
	purgeCancelledText    = "❌ History clean operation cancelled."
	invalidPurgeText      = "⚠️ Invalid clean command. Use /adminhistory_clean_25, _50, _75 or _90."

	alertFmt = "🚨 CONTENT VIOLATION attempt by user %d (%s). Reason: %s. Text: %s"
)

func aboutText(cooldownSec, dailyLimit int) string {
	return "ℹ️ About the QR Code Generator Bot\n\n" +
		"This bot converts text, URLs and other data into QR codes, fast and reliably.\n\n" +
		fmt.Sprintf("⏱️ Soft limit: %d seconds between generations.\n", cooldownSec) +
		fmt.Sprintf("📅 Daily limit: %d QR codes per user, to keep the service fair for everyone.", dailyLimit)
}

func privacyText(cooldownSec, dailyLimit int) string {
	return "🔒 Privacy Policy & Terms of Use\n\n" +
		"1. Data collection\n" +
		"• User ID: used for limits and history.\n" +
		"• QR content: stored temporarily for moderation and abuse prevention.\n" +
		"Your data is not shared with third parties.\n\n" +
		"2. Terms of use\n" +
		"🚫 QR codes for illegal, harmful or fraudulent content (scam/phishing) are forbidden and filtered.\n\n" +
		fmt.Sprintf("⏱️ Soft limit: %d seconds between generations.\n", cooldownSec) +
		fmt.Sprintf("📅 Daily limit: %d QR codes per day.\n\n", dailyLimit) +
		"⚠️ Repeated violations may lead to service suspension."
}

const contactText = "📞 Contact Info\n\n" +
	"Questions or problems? Reach the bot admin:\n" +
	"01. Email: praneeshadilushi@gmail.com\n" +
	"02. Telegram: @praneeshaAk"

const helpText = "🆘 Help\n\n" +
	"📖 User commands:\n" +
	"1. /generate — start QR code generation.\n" +
	"2. /stop — leave QR generation mode.\n" +
	"3. /history — your QR count for today.\n" +
	"4. /about — about this bot.\n" +
	"5. /privacy — privacy policy and terms of use.\n" +
	"6. /help — this message.\n" +
	"7. /download — how to save generated QR codes.\n" +
	"8. /contact — contact the bot admin."

const downloadText = "⬇️ Download QR codes as images\n\n" +
	"01. Tap the QR image.\n" +
	"02. Tap the three-dots icon at the top.\n" +
	"03. Select Save to Gallery."

// mainMenuKeyboard is the persistent reply keyboard shown on /start and /menu.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnGenerate),
			tgbotapi.NewKeyboardButton(btnHistory),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAbout),
			tgbotapi.NewKeyboardButton(btnPrivacy),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnContact),
			tgbotapi.NewKeyboardButton(btnHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func backButtonKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func whyLimitKeyboard(kind string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Why this limit", "why:"+kind),
		),
	)
}

func purgeConfirmKeyboard(target string) tgbotapi.InlineKeyboardMarkup {
	label := "✅ Confirm delete ALL"
	if target != "all" {
		label = "✅ Confirm delete " + target + "% (oldest)"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "purge:"+target),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "purge:cancel"),
		),
	)
}
