package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag back to its default so commands can run more
// than once in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

var _ = Describe("ledger command", func() {
	var dir, db string

	run := func(args ...string) (string, error) {
		resetFlags(rootCmd)
		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetErr(out)
		rootCmd.SetArgs(append([]string{"--db", db}, args...))
		err := rootCmd.Execute()
		return out.String(), err
	}

	mustRun := func(args ...string) string {
		out, err := run(args...)
		Expect(err).NotTo(HaveOccurred(), out)
		return out
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		db = filepath.Join(dir, "finance.db")
		GinkgoT().Setenv("LEDGER_LOGGING_LEVEL", "error")
	})

	It("initializes a ledger with the default categories", func() {
		out := mustRun("init")
		Expect(out).To(ContainSubstring("Salary"))
		Expect(out).To(ContainSubstring("inserted"))

		out = mustRun("init")
		Expect(out).To(ContainSubstring("nothing seeded"))
	})

	It("reports the schema version", func() {
		mustRun("migrate", "up")
		out := mustRun("migrate", "status")
		Expect(out).To(ContainSubstring("version:  2 (latest 2)"))
		Expect(out).To(ContainSubstring("pending:  false"))
	})

	It("manages categories", func() {
		mustRun("category", "add", "Pets", "--type", "expense")
		Expect(mustRun("category", "list")).To(ContainSubstring("Pets"))

		_, err := run("category", "add", "Pets", "--type", "expense")
		Expect(err).To(HaveOccurred())

		_, err = run("category", "add", "Gifts", "--type", "transfer")
		Expect(err).To(HaveOccurred())
	})

	It("records entries and reports monthly statistics", func() {
		mustRun("init")
		mustRun("entry", "add", "--amount", "100", "--category-id", "2", "--date", "2024-01-05", "--receipt", "/r/a.png")
		mustRun("entry", "add", "--amount", "50", "--category-id", "2", "--date", "2024-01-20")
		mustRun("entry", "add", "--amount", "30", "--category-id", "3", "--date", "2024-02-01")
		mustRun("entry", "add", "--amount", "2000", "--category-id", "1", "--date", "2024-01-31")

		list := mustRun("entry", "list")
		Expect(list).To(ContainSubstring("Groceries"))
		Expect(list).To(ContainSubstring("/r/a.png"))

		stats := mustRun("stats")
		Expect(stats).To(ContainSubstring("2024"))
		Expect(stats).To(ContainSubstring("150.00"))
		Expect(stats).To(ContainSubstring("30.00"))
		Expect(stats).NotTo(ContainSubstring("2000.00"))
	})

	It("validates entry input before opening the ledger", func() {
		_, err := run("entry", "add", "--amount=-3", "--category-id", "2", "--date", "2024-01-05")
		Expect(err).To(MatchError(ContainSubstring("greater than zero")))

		_, err = run("entry", "add", "--amount", "3", "--category-id", "2", "--date", "05/01/2024")
		Expect(err).To(MatchError(ContainSubstring("YYYY-MM-DD")))

		Expect(db).NotTo(BeAnExistingFile())
	})

	It("updates and deletes entries", func() {
		mustRun("entry", "add", "--amount", "10", "--category-id", "2", "--date", "2024-03-03", "--receipt", "/r/b.png")

		out := mustRun("entry", "update", "1", "--amount", "12.34", "--description", "fixed", "--clear-receipt")
		Expect(out).To(ContainSubstring("updated 3 field(s)"))

		list := mustRun("entry", "list")
		Expect(list).To(ContainSubstring("12.34"))
		Expect(list).To(ContainSubstring("fixed"))
		Expect(list).NotTo(ContainSubstring("/r/b.png"))

		_, err := run("entry", "update", "99", "--amount", "1")
		Expect(err).To(MatchError(ContainSubstring("does not exist")))

		mustRun("entry", "delete", "1")
		Expect(mustRun("entry", "list")).NotTo(ContainSubstring("fixed"))
	})

	It("backs up, restores and exports", func() {
		mustRun("init")
		out := mustRun("backup", filepath.Join(dir, "snap"))
		Expect(out).To(ContainSubstring("snap.db"))

		mustRun("category", "add", "Pets")
		mustRun("restore", filepath.Join(dir, "snap.db"))
		Expect(mustRun("category", "list")).NotTo(ContainSubstring("Pets"))

		mustRun("entry", "add", "--amount", "5", "--category-id", "2", "--date", "2024-04-04")
		out = mustRun("export", filepath.Join(dir, "ledger"))
		Expect(out).To(ContainSubstring("ledger.xlsx"))
		_, err := os.Stat(filepath.Join(dir, "ledger.xlsx"))
		Expect(err).NotTo(HaveOccurred())
	})
})
