// Package tesseract implements ai.Recognizer with the Tesseract OCR engine
// via gosseract. It requires the libtesseract native library and trained
// language data at runtime.
package tesseract
