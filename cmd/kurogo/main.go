// SPDX-License-Identifier: MIT

package main

import (
	"log"
	"os"

	"github.com/kurogo/kurogo"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("kurogo: ")

	if len(os.Args) != 4 {
		log.Printf("usage: kurogo <sys.dic> <matrix.bin> <input.txt>")
		os.Exit(1)
	}

	os.Exit(run(os.Args[1], os.Args[2], os.Args[3]))
}

func run(dictPath, matrixPath, inputPath string) int {
	dictFile, err := os.Open(dictPath)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer dictFile.Close()

	dict, err := kurogo.LoadDictionary(dictFile)
	if err != nil {
		log.Printf("%v", err)
		return exitCode(err)
	}

	matFile, err := os.Open(matrixPath)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer matFile.Close()

	mat, err := kurogo.LoadMatrix(matFile)
	if err != nil {
		log.Printf("%v", err)
		return exitCode(err)
	}

	text, err := os.ReadFile(inputPath)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	text = stripTrailingControl(text)

	path, err := kurogo.Analyze(dict, mat, text)
	if err != nil {
		log.Printf("%v", err)
		return exitCode(err)
	}

	if _, err := path.WriteTo(os.Stdout); err != nil {
		log.Printf("%v", err)
		return 1
	}
	return 0
}

// stripTrailingControl trims trailing control bytes (anything below
// 0x20 except tab) off text, the same trailing-newline cleanup
// original_source/main.cpp's read_entire_file_into_string applies
// before handing input text to the parser.
func stripTrailingControl(text []byte) []byte {
	end := len(text)
	for end > 0 && text[end-1] < 0x20 && text[end-1] != '\t' {
		end--
	}
	return text[:end]
}

// exitCode maps an AnalyzerError's Kind to the process exit code
// documented in SPEC_FULL.md §6.
func exitCode(err error) int {
	switch {
	case kurogo.IsIOError(err), kurogo.IsFormatError(err):
		return 1
	case kurogo.IsIntegrityError(err), kurogo.IsDecodeError(err):
		return 2
	case kurogo.IsSearchError(err):
		return 3
	default:
		return 1
	}
}
