package source_test

import (
	"context"
	"encoding/base64"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	errs "github.com/thbteam/patient-dashboard/errors"
	"github.com/thbteam/patient-dashboard/source"
	sourceTest "github.com/thbteam/patient-dashboard/source/test"
)

const svgLogo = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`

var _ = Describe("Loader", func() {
	var ctrl *gomock.Controller
	var fetcher *sourceTest.MockFetcher
	var config *source.Config

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		fetcher = sourceTest.NewMockFetcher(ctrl)
		config = &source.Config{
			ExcelLink: "https://files.example.com/patients.xlsx",
			LogoLink:  "https://files.example.com/logo?download=1",
		}
	})

	It("fetches the workbook and the logo", func() {
		fetcher.EXPECT().Fetch(gomock.Any(), config.ExcelLink).Return([]byte("workbook"), nil)
		fetcher.EXPECT().Fetch(gomock.Any(), config.LogoLink).Return([]byte(svgLogo), nil)

		assets, err := source.NewLoader(config, fetcher, zap.NewNop().Sugar()).Load(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(assets.Workbook).To(Equal([]byte("workbook")))
		Expect(assets.LogoContentType).To(Equal("image/svg+xml"))
		Expect(assets.LogoDataURI()).To(Equal("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svgLogo))))
	})

	It("fails when any of the downloads fails", func() {
		fetcher.EXPECT().Fetch(gomock.Any(), config.ExcelLink).Return([]byte("workbook"), nil).AnyTimes()
		fetcher.EXPECT().Fetch(gomock.Any(), config.LogoLink).Return(nil, fmt.Errorf("%w: failed to download file", errs.BadGateway)).AnyTimes()

		assets, err := source.NewLoader(config, fetcher, zap.NewNop().Sugar()).Load(context.Background())
		Expect(err).To(MatchError(errs.BadGateway))
		Expect(assets).To(BeNil())
	})

	DescribeTable("detects the logo content type",
		func(link string, data []byte, expected string) {
			Expect(source.DetectImageContentType(link, data)).To(Equal(expected))
		},
		Entry("svg by extension", "https://x/logo.SVG?a=1", []byte("not sniffable"), "image/svg+xml"),
		Entry("svg by content", "https://x/logo", []byte("  "+svgLogo), "image/svg+xml"),
		Entry("svg with xml prolog", "https://x/logo", []byte(`<?xml version="1.0"?>`+svgLogo), "image/svg+xml"),
		Entry("png", "https://x/logo", []byte("\x89PNG\r\n\x1a\n0000"), "image/png"),
		Entry("empty", "https://x/logo", []byte{}, "text/plain; charset=utf-8"),
	)

	It("returns an empty data uri without a logo", func() {
		var assets *source.Assets
		Expect(assets.LogoDataURI()).To(BeEmpty())
	})
})
