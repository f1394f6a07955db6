package bot

import (
	"fmt"

	"github.com/finbuddy/finbuddy/internal/interfaces"
)

// Callback data values carried by inline keyboard buttons.
const (
	cbMarkets    = "markets"
	cbChat       = "chat"
	cbAnalyze    = "analyze"
	cbStep2      = "ai_analysis_step2"
	cbStep3      = "ai_analysis_step3"
	cbFinalStep  = "final_analysis_step"
	cbBackToMenu = "back_to_menu"
)

const (
	fetchingMarketsMsg = "Fetching latest market data... Please wait."
	marketsFailedMsg   = "❌ Could not fetch market data right now. Please try again in a few minutes."

	analyzePromptMsg = "📈 *Stock Analysis with AI*\n\nPlease enter the ticker symbol of the stock you want to analyze.\n\nExample: RELIANCE, TCS etc"

	analyzingStockMsg = "Analyzing stock data... Please wait."

	noChatSessionMsg = "Please start a chat session first using /chat command."
	chatStartFailMsg = "Sorry, I couldn't start a chat session right now. Please try again."

	missingStep2ContextMsg = "⚠️ Could not retrieve stock information for detailed analysis. Please try analyzing the stock again."
	missingStep3ContextMsg = "⚠️ Could not retrieve stock information for Step 3 analysis. Please try analyzing the stock again."
	missingFinalContextMsg = "⚠️ Sorry, I don't have the previous analysis data for this stock. Please start a new analysis."
)

func welcomeMessage(firstName string) string {
	return fmt.Sprintf(`👋 *Welcome to FinBuddy, %s!* 👋

🔍 *About FinBuddy*
I'm your personal finance assistant, designed to provide you with real-time market updates, financial insights, and analysis.

💼 *Available Commands*:
• /markets - Get current Indian stock market overview
• /chat - Chat with Finance Buddy
• /analyze - Analyze a stock with AI
• More features coming soon!

How can I assist you with your financial needs today?`, firstName)
}

func tickerNotFoundMessage(ticker string) string {
	return fmt.Sprintf("❌ *Error*: Could not fetch data for %s. Please check the ticker symbol and try again.", ticker)
}

func step2ProgressMessage(name, ticker string) string {
	return fmt.Sprintf("Fetching detailed financials for %s (%s)... Please wait. ⏳", name, ticker)
}

func step3ProgressMessage(name, ticker string) string {
	return fmt.Sprintf("Fetching Balance Sheet & Cash Flow for %s (%s) for AI analysis... Please wait. ⏳", name, ticker)
}

func finalProgressMessage(name, ticker string) string {
	return fmt.Sprintf("🤖 Generating final AI summary for %s (%s)... Please wait. This might take a moment. ⏳", name, ticker)
}

func stepFailedMessage(name string) string {
	return fmt.Sprintf("❌ *Error fetching financials for %s*:\nCould not complete the analysis. Please try again.", name)
}

func mainMenuKeyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "Market Overview 📊", Data: cbMarkets}},
		{{Text: "Chat with Finance Buddy 💬", Data: cbChat}},
		{{Text: "Analyze Stock With AI 📈", Data: cbAnalyze}},
	}
}

func backToMenuKeyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "Back to Menu ⏮️", Data: cbBackToMenu}},
	}
}

func chatKeyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "🔙 Back to Menu", Data: cbBackToMenu}},
	}
}

func afterStep1Keyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "Move to Step 2 ⏩", Data: cbStep2}},
		{{Text: "Back to Menu ⏮️", Data: cbBackToMenu}},
	}
}

func afterStep2Keyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "Move To Step Three ⏩", Data: cbStep3}},
		{{Text: "Back to Menu ⏮️", Data: cbBackToMenu}},
	}
}

func afterStep3Keyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "Get Final Analysis 💡", Data: cbFinalStep}},
		{{Text: "Analyze Another Stock 📈", Data: cbAnalyze}},
		{{Text: "Back to Menu ⏮️", Data: cbBackToMenu}},
	}
}

func afterFinalKeyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "Thanks 👍", Data: cbBackToMenu}},
	}
}

func retryAnalyzeKeyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "Analyze Stock 📈", Data: cbAnalyze}},
	}
}

func missingFinalKeyboard() [][]interfaces.InlineButton {
	return [][]interfaces.InlineButton{
		{{Text: "Analyze Another Stock 📈", Data: cbAnalyze}},
		{{Text: "Back to Menu ⏮️", Data: cbBackToMenu}},
	}
}
