package eventstream_test

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rashtram/billrag/pkg/eventstream"
)

func TestEventstream(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Eventstream Suite")
}

var _ = Describe("DocumentIngestedEvent", func() {
	It("assigns a unique id and a recent UTC timestamp", func() {
		a := eventstream.NewDocumentIngestedEvent("42", "Water Bill", "https://example.com/42.pdf", 7, 12)
		b := eventstream.NewDocumentIngestedEvent("42", "Water Bill", "https://example.com/42.pdf", 7, 12)

		Expect(a.EventID).NotTo(BeEmpty())
		Expect(a.EventID).NotTo(Equal(b.EventID))
		Expect(a.EventType).To(Equal(eventstream.EventTypeDocumentIngested))
		Expect(a.SchemaVersion).To(Equal(eventstream.SchemaVersion))
		Expect(a.EmittedAt).To(BeTemporally("~", time.Now().UTC(), time.Minute))
	})

	It("serializes the document fields", func() {
		event := eventstream.NewDocumentIngestedEvent("42", "Water Bill", "https://example.com/42.pdf", 7, 12)

		data, err := json.Marshal(event)
		Expect(err).NotTo(HaveOccurred())

		var decoded map[string]any
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded["documentId"]).To(Equal("42"))
		Expect(decoded["chunksStored"]).To(BeNumerically("==", 7))
		Expect(decoded["pageCount"]).To(BeNumerically("==", 12))
		Expect(decoded["eventType"]).To(Equal("billrag.document.ingested"))
	})
})
