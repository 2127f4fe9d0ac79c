package bench

import "assistant-kit/internal/model"

// PromptTemplate is the travel-advice chain the benchmark drives.
const PromptTemplate = `You are very knowledgeable about the world and enjoy sharing your knowledge with others. Please answer the human's question. Limit your answers to a maximum of three sentences.

Here are the prior messages in this conversation:
{chat_history}

Here is a question: {input}
`

// RetrieverPromptTemplate adds the retrieved pieces of earlier conversation.
const RetrieverPromptTemplate = `You are very knowledgeable about the world and enjoy sharing your knowledge with others. Please answer the human's question. Limit your answers to a maximum of three sentences.

Relevant pieces of previous conversation:
{retriever_results}

(You do not need to use these pieces of information if not relevant)

The history of this conversation:
{chat_history}

Current conversation:
Human: {input}
AI:
`

// Fixture is a conversation to seed plus the human messages to replay on top.
type Fixture struct {
	Name     string
	History  []model.Turn
	Messages []string
}

func h(content string) model.Turn { return model.Turn{Role: model.RoleHuman, Content: content} }
func a(content string) model.Turn { return model.Turn{Role: model.RoleAssistant, Content: content} }

// Iceland is a trip-planning conversation.
var Iceland = Fixture{
	Name: "iceland",
	History: []model.Turn{
		h("Hello"),
		a("Hi there!"),
		h("I'm looking to plan a trip to Iceland. Can you help me?"),
		a("Of course! I'd be happy to help you plan your trip."),
		h("What's the best time of year to go?"),
		a("The best time to visit Iceland is from June to August. The weather is milder, and you'll have more daylight for sightseeing."),
		h("Do I need a visa?"),
		a("Visa requirements depend on your nationality. Citizens of the Schengen Area, the US, Canada, and several other countries can visit Iceland for up to 90 days without a visa."),
		h("What are some must-see attractions?"),
		a("Some popular attractions include the Blue Lagoon, Golden Circle, Reynisfjara Black Sand Beach, Gulfoss waterfall, and the Jökulsárlón Glacier Lagoon."),
		h("What should I pack?"),
		a("Pack warm and waterproof clothing, layers for temperature changes, comfortable walking shoes, a swimsuit for hot springs, and a camera to capture the beautiful scenery."),
		h("Should I rent a car?"),
		a("Renting a car is a great idea if you plan on exploring areas outside of Reykjavik. It gives you more freedom to travel at your own pace and visit remote locations."),
		h("How much does a trip to Iceland typically cost?"),
		a("Iceland can be expensive. Costs depend on factors like accommodations, activities, and dining preferences. However, you can expect to spend around $200-$300 per day, not including flights."),
		h("Is it easy to find vegetarian or vegan food in Iceland?"),
		a("Yes, Reykjavik has several vegetarian and vegan-friendly restaurants. In smaller towns, you may find fewer options, but most places will have some vegetarian dishes available."),
		h("Thank you for all this information! I'm excited to start planning my trip."),
		a("You're welcome! Have a great time planning and enjoy your trip to Iceland!"),
	},
	Messages: []string{
		"What's the local currency and how can I get it?",
		"Is English widely spoken in Iceland?",
		"Can you suggest some local dishes I should try?",
		"What's the weather like during the winter?",
		"Are there any customs or etiquette rules I should be aware of?",
		"What's the situation with COVID-19 in Iceland? Are there any travel restrictions?",
		"How safe is it to travel in Iceland?",
		"Can you recommend any guided tours?",
		"What kind of power plug do I need?",
		"What's the emergency number in Iceland?",
	},
}
