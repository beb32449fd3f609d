// Package assess obtains a structured cancer-risk assessment for a
// mammogram from an external generative model.
//
// The Analyzer interface hides the provider; GeminiAnalyzer is the shipped
// implementation. Response handling is deliberately forgiving: the model is
// prompted for a JSON-like structure, but ParseResponse treats the reply as
// untrusted text and regex-extracts what it can, deriving every missing
// numeric field from conservative defaults so a drifting model never breaks
// the pipeline.
package assess
