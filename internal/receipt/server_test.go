package receipt

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Server", func() {
	var (
		store       *mockStore
		service     *Service
		server      *Server
		ghttpServer *ghttp.Server
	)

	setupServer := func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	}

	BeforeEach(func() {
		store = newMockStore()
		service = NewServiceWithDeps(store, &mockIDGenerator{id: "test-id-123"})
		server = NewServerWithMux(service, http.NewServeMux())
		setupServer()
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	postReceipt := func(contentType, body string) (*http.Response, map[string]string) {
		resp, err := http.Post(ghttpServer.URL()+"/receipts/process", contentType, bytes.NewBufferString(body))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		var decoded map[string]string
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		return resp, decoded
	}

	Describe("handleProcessReceipt", func() {
		validBody := `{
			"retailer": "Test Retailer",
			"purchaseDate": "2022-01-01",
			"purchaseTime": "13:01",
			"items": [
				{"shortDescription": "Item 1", "price": "10.00"},
				{"shortDescription": "Item 2", "price": "15.00"}
			],
			"total": "25.00"
		}`

		When("the submission is valid", func() {
			It("should return status OK with the generated id", func() {
				resp, body := postReceipt("application/json", validBody)
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(body).To(HaveKeyWithValue("id", "test-id-123"))
			})

			It("should set Content-Type to application/json", func() {
				resp, _ := postReceipt("application/json", validBody)
				Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
			})

			It("accepts a content type with a charset parameter", func() {
				resp, _ := postReceipt("application/json; charset=utf-8", validBody)
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
			})
		})

		When("the content type is not JSON", func() {
			It("should return status Bad Request", func() {
				resp, body := postReceipt("text/plain", validBody)
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(body).To(HaveKeyWithValue("ErrorMessage", "Invalid content type. Expected 'application/json'."))
			})
		})

		When("the body is not valid JSON", func() {
			It("should return the malformed payload message", func() {
				resp, body := postReceipt("application/json", `{"retailer": `)
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(body).To(HaveKeyWithValue("ErrorMessage", "Invalid JSON format.."))
			})
		})

		When("the items array is empty", func() {
			It("should return the empty items message", func() {
				resp, body := postReceipt("application/json", `{
					"retailer": "Test Retailer",
					"purchaseDate": "2022-01-01",
					"purchaseTime": "13:01",
					"items": [],
					"total": "0.00"
				}`)
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(body).To(HaveKeyWithValue("ErrorMessage", "At least one item is required in the receipt."))
			})
		})

		When("the total does not match the item prices", func() {
			It("should return the mismatch message with both values", func() {
				resp, body := postReceipt("application/json", `{
					"retailer": "Test Retailer",
					"purchaseDate": "2022-01-01",
					"purchaseTime": "13:01",
					"items": [
						{"shortDescription": "Item 1", "price": "10.00"},
						{"shortDescription": "Item 2", "price": "20.00"}
					],
					"total": "25.00"
				}`)
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(body).To(HaveKeyWithValue("ErrorMessage", "Total does not match the sum of item prices. Expected 30.00, but got 25.00. Check the receipt."))
			})
		})

		When("the store fails unexpectedly", func() {
			BeforeEach(func() {
				store.insertErr = io.ErrUnexpectedEOF
			})

			It("should return status Internal Server Error with a generic prefix", func() {
				resp, body := postReceipt("application/json", validBody)
				Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
				Expect(body["ErrorMessage"]).To(HavePrefix("An unexpected error occurred: "))
			})
		})

		When("request method is not POST", func() {
			It("should return status Method Not Allowed", func() {
				resp, err := http.Get(ghttpServer.URL() + "/receipts/process")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
				resp.Body.Close()
			})
		})
	})

	Describe("handleGetPoints", func() {
		When("the receipt exists", func() {
			BeforeEach(func() {
				store.records["test-id-123"] = 98
			})

			It("should return the points", func() {
				resp, err := http.Get(ghttpServer.URL() + "/receipts/test-id-123/points")
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var body map[string]int
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body).To(HaveKeyWithValue("points", 98))
			})
		})

		When("the receipt does not exist", func() {
			It("should return status Not Found with the fixed message", func() {
				resp, err := http.Get(ghttpServer.URL() + "/receipts/unknown-id/points")
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body).To(HaveKeyWithValue("ErrorMessage", "Receipt not found"))
			})
		})
	})

	Describe("handleHealth", func() {
		It("should return status OK", func() {
			resp, err := http.Get(ghttpServer.URL() + "/health")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body map[string]string
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body).To(HaveKeyWithValue("status", "ok"))
		})
	})

	Describe("metrics endpoint", func() {
		It("should serve the exposition format", func() {
			resp, err := http.Get(ghttpServer.URL() + "/metrics")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			data, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("receipt_processor"))
		})
	})
})
