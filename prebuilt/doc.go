// Package prebuilt contains ready-made agents assembled from the graph
// engine.
//
// PromptAgent is the reference agent: it gathers prompt requirements from
// the user over multiple turns, acknowledges the model's emit_instructions
// tool call with a synthetic tool message, and generates the final prompt
// template. The LLM is reached through langchaingo's llms.Model interface,
// so any supported provider plugs in.
package prebuilt
