package agent

import (
	"github.com/etnz/yieldbook"
	"google.golang.org/genai"
)

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user holds wealth management products and regularly records their net value. They are
			here to understand how each product performs and which ones to keep or redeem.

			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			The user will assume that you know about their products, ask the Analyst first.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert grounded on Google Search, for questions about
// issuers and products beyond the user's book.
func NewAdvisor(model string) *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a financial advisor, aware of wealth management products, their issuers and
		the latest news about interest rates. Ask the Advisor whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in wealth management products. You Leverage Google Search to
			ground your assertions in a solid truth, and you know how to relate the latest news
			to the user's request.
			`}}},
		},
	}
}

// NewAnalyst returns the expert reading the user's book.
func NewAnalyst(model string, book *yieldbook.Book, currency string) *Expert {
	lib := BookFunctions(book, currency)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They read the user's book of wealth management products and
		the net value queries recorded for them, and compute the relevant figures about their yields.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst in charge of the user's book of wealth management products.
			You know how to use the Tools to extract relevant information about the products:
			  - the board of products with their latest annualized yield
			  - the details of a product
			  - the history of net value queries of a product
			  - the documentation about how yields are computed
			Products are referenced by their id, a prefix of it, or their product code.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}
