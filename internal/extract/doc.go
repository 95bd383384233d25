// Package extract turns noisy video and script names into matching metadata.
//
// Extraction runs in a fixed order: studio detection against the raw parent
// folder and name, date detection on the same text, normalization, then
// tokenization and filtering. The detected date is cut out of the text before
// normalization so its digits never become keywords.
package extract
