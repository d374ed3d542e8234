package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/emoset/emoset/dataset"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Validate the dataset file and count records per label and split",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(datasetPath)
		if err != nil {
			return err
		}
		defer f.Close()

		st, err := dataset.Collect(f, vocab)
		if err != nil {
			return fmt.Errorf("%s: %w", datasetPath, err)
		}
		printStats(os.Stdout, st, vocab)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func printStats(out io.Writer, st dataset.Stats, vocab *dataset.Vocabulary) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CODE\tLABEL\tTRAINING\tTESTING\tTOTAL")
	fmt.Fprintln(w, "----\t-----\t--------\t-------\t-----")

	var training, testing int
	for i, name := range vocab.Names() {
		counts := st.Counts[dataset.Emotion(i)]
		tr, te := counts[dataset.Training], counts[dataset.Testing]
		training += tr
		testing += te
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", i, name, tr, te, tr+te)
	}
	fmt.Fprintf(w, "\t\t%d\t%d\t%d\n", training, testing, st.Total)
	w.Flush()
}
