//go:build system

package system_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"recording-logs/internal/client"
	"recording-logs/internal/domain"
)

var _ = Describe("Recording log blackbox", Ordered, func() {
	var harness *systemHarness
	var apiClient *client.Client

	BeforeAll(func() {
		var err error
		harness, err = startHarness(GinkgoT().TempDir())
		Expect(err).ToNot(HaveOccurred())
		apiClient = client.New(harness.server.URL)

		Expect(harness.seed("task-early", "2024-01-01T10:00:00Z", domain.StatusSuccess, "")).To(Succeed())
		Expect(harness.seed("task-boundary", "2024-01-05T23:59:59Z", domain.StatusFailure, "transcode step exited with code 2")).To(Succeed())
		Expect(harness.seed("task-late", "2024-01-10T00:00:00Z", domain.StatusQueued, "")).To(Succeed())
	})

	AfterAll(func() {
		harness.stop()
	})

	It("returns exactly the records inside the date range, boundaries included", func() {
		records, err := apiClient.FetchRecords(context.Background(), "2024-01-01", "2024-01-05")
		Expect(err).ToNot(HaveOccurred())

		ids := make([]string, 0, len(records))
		for _, rec := range records {
			ids = append(ids, rec.TaskID)
		}
		Expect(ids).To(ConsistOf("task-early", "task-boundary"))
	})

	It("maps store fields to the display vocabulary", func() {
		records, err := apiClient.FetchRecords(context.Background(), "2024-01-05", "2024-01-05")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(HaveLen(1))

		rec := records[0]
		Expect(rec.TaskID).To(Equal("task-boundary"))
		Expect(rec.AgentName).To(Equal("agent-smith"))
		Expect(rec.FormName).To(Equal("intake-form"))
		Expect(rec.Program).To(Equal("medicaid"))
		Expect(rec.CaseNumber).To(Equal("C-100"))
		Expect(rec.AppNumber).To(Equal("A-200"))
		Expect(rec.Status).To(Equal(domain.StatusFailure))
		Expect(rec.UploadedOn).ToNot(BeEmpty())
		Expect(rec.FailureMessage).To(Equal("transcode step exited with code 2"))
	})

	It("returns an empty set for a range with no records", func() {
		records, err := apiClient.FetchRecords(context.Background(), "2020-01-01", "2020-01-02")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("rejects a query with missing dates without touching the store", func() {
		_, err := apiClient.FetchRecords(context.Background(), "", "")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Start and end dates are required"))
	})

	It("requeues a failed conversion exactly once and reports the new status", func() {
		ack, err := apiClient.RequeueRecording(context.Background(), "task-boundary")
		Expect(err).ToNot(HaveOccurred())
		Expect(string(ack)).To(MatchJSON(`{"taskId":"task-boundary","status":5}`))
		Expect(harness.dispatcher.Requeued()).To(Equal([]string{"task-boundary"}))

		records, err := apiClient.FetchRecords(context.Background(), "2024-01-05", "2024-01-05")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0].Status).To(Equal(domain.StatusFailureRetry))
	})

	It("propagates a requeue rejection for an unknown task", func() {
		_, err := apiClient.RequeueRecording(context.Background(), "ghost")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("recording not found"))
	})
})
