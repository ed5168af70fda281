package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	API_INFO_URI = "sentiment://api/info"
	EXAMPLES_URI = "sentiment://examples"
)

func (s *Server) registerResources(srv *server.MCPServer) {
	srv.AddResource(mcp.NewResource(API_INFO_URI, "Sentiment API Information",
		mcp.WithResourceDescription("Endpoints and usage notes for the sentiment analysis API"),
		mcp.WithMIMEType("text/markdown"),
	), s.handleAPIInfo)

	srv.AddResource(mcp.NewResource(EXAMPLES_URI, "Sentiment Analysis Examples",
		mcp.WithResourceDescription("Example texts and use cases for sentiment analysis"),
		mcp.WithMIMEType("text/markdown"),
	), s.handleExamples)
}

func (s *Server) handleAPIInfo(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      API_INFO_URI,
			MIMEType: "text/markdown",
			Text:     apiInfoMarkdown(s.gateway.BaseURL()),
		},
	}, nil
}

func (s *Server) handleExamples(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      EXAMPLES_URI,
			MIMEType: "text/markdown",
			Text:     examplesMarkdown,
		},
	}, nil
}

func apiInfoMarkdown(baseURL string) string {
	return fmt.Sprintf(`# Sentiment Analysis API Information

**Base URL**: %s
**API Version**: %s

## Available Endpoints

### POST /predict
Predicts the sentiment (positive/negative) of provided text using a pretrained deep learning model.

**Request Body**:
`+"```json"+`
{
  "text": "Your text to analyze"
}
`+"```"+`

**Response**:
`+"```json"+`
{
  "sentiment": "positive" | "negative"
}
`+"```"+`

### GET /health
Reports whether the service is up and which classifier backend it is running.

## Usage Notes
- The API uses a pretrained deep learning model for sentiment classification
- Supports text in various formats and lengths
- Returns binary classification: positive or negative
- Response time typically under 1 second for standard text lengths

## Error Handling
- 400: Bad Request (missing or empty text)
- 500: Internal Server Error (model processing failed)
`, baseURL, SERVER_VERSION)
}

const examplesMarkdown = `# Sentiment Analysis Examples

## Positive Examples
- "I love this product! It works perfectly and exceeded my expectations."
- "What a beautiful day! The weather is amazing."
- "Thank you so much for your help. You're the best!"
- "This movie was absolutely fantastic. Highly recommend!"

## Negative Examples
- "This is the worst service I've ever experienced."
- "I'm really disappointed with this purchase. It broke immediately."
- "The weather is terrible today. Rain and cold."
- "This software is buggy and unreliable."

## Neutral/Mixed Examples (may vary in classification)
- "The product is okay, nothing special."
- "It works as expected, no complaints."
- "Standard quality for the price."
- "The meeting was informative but long."

## Use Cases
- **Customer Feedback**: Analyze reviews and support tickets
- **Social Media Monitoring**: Track brand sentiment on platforms
- **Content Moderation**: Identify potentially negative content
- **Market Research**: Understand public opinion about products/services
- **Email Analysis**: Classify customer emails by sentiment
`
