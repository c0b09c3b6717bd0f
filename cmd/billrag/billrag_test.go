package billragcmder_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	billragcmder "github.com/rashtram/billrag/cmd/billrag"
)

func TestBillragCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Billrag Cmd Suite")
}

var _ = Describe("NewBillragCmd", func() {
	It("registers every subcommand", func() {
		cmd := billragcmder.NewBillragCmd()

		names := make([]string, 0)
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}

		Expect(names).To(ContainElements("serve", "ingest", "ask", "summary"))
	})

	It("exposes the persistent debug and config flags", func() {
		cmd := billragcmder.NewBillragCmd()

		Expect(cmd.PersistentFlags().Lookup("debug")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("config")).NotTo(BeNil())
	})
})
