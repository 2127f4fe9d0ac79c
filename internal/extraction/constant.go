package extraction

const (
	LogPrefix = "extraction"

	// ToolName is the function the model is asked to call with its candidates.
	ToolName        = "information_extraction"
	toolDescription = "Extracts the relevant information from the passage."
	toolArgument    = "info"

	pathSeparator = "."
)

const extractionPrompt = `Extract and save the relevant entities mentioned in the following passage together with their properties.

Only extract the properties mentioned in the '` + ToolName + `' function.

If a property is not present and is not required in the function parameters, do not include it in the output.

Passage:
%s`

const jsonFallbackInstruction = `

If you cannot call the function, reply with only a JSON object of the form {"info": [ ... ]} matching the function parameters.`
