package florch

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func getResultsFileName(resultsDir string) string {
	os.MkdirAll(resultsDir, 0755)
	return filepath.Join(resultsDir, fmt.Sprintf("results_%s.csv", time.Now().Format("2006-01-02_15-04")))
}

func writeResultsToFile(fileName string, round int32, accuracy float64, loss float64, cost float64) {
	file, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Failed to open file: %v\n", err)
		return
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	record := []string{fmt.Sprintf("%d", round), fmt.Sprintf("%.4f", accuracy), fmt.Sprintf("%.4f", loss),
		fmt.Sprintf("%.2f", cost)}
	if err := writer.Write(record); err != nil {
		fmt.Printf("Failed to write record: %v\n", err)
		return
	}
}
