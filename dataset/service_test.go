package dataset_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/dataset"
	datasetTest "github.com/thbteam/patient-dashboard/dataset/test"
	errs "github.com/thbteam/patient-dashboard/errors"
	"github.com/thbteam/patient-dashboard/source"
	sourceTest "github.com/thbteam/patient-dashboard/source/test"
	"github.com/thbteam/patient-dashboard/test"
)

type requestKey struct{}

var _ = Describe("Service", func() {
	var ctrl *gomock.Controller
	var loader *sourceTest.MockLoader
	var config *dataset.Config
	var assets *source.Assets

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		loader = sourceTest.NewMockLoader(ctrl)
		config = &dataset.Config{CacheSize: 2, CacheExpiration: time.Hour}

		header := datasetTest.Header("Hemoglobin")
		workbook, err := datasetTest.Workbook(header, datasetTest.Rows(header,
			datasetTest.RandomVisit("Hemoglobin"),
			datasetTest.RandomVisit("Hemoglobin"),
		))
		Expect(err).ToNot(HaveOccurred())
		assets = &source.Assets{Workbook: workbook, Logo: []byte("<svg/>"), LogoContentType: "image/svg+xml"}
	})

	newService := func() dataset.Service {
		service, err := dataset.NewService(config, dataset.DefaultLayout(), loader, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		return service
	}

	It("loads and cleans the dataset once per session", func() {
		loader.EXPECT().Load(gomock.Any()).Return(assets, nil).Times(1)
		service := newService()

		session, err := service.Get(context.Background(), "session-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(session.Dataset.Records).To(HaveLen(2))
		Expect(session.Assets.LogoContentType).To(Equal("image/svg+xml"))

		cached, err := service.Get(context.Background(), "session-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(cached).To(BeIdenticalTo(session))
	})

	It("loads the assets with the caller's context", func() {
		ctx := context.WithValue(context.Background(), requestKey{}, "request-1")
		loader.EXPECT().Load(test.Match(func(c context.Context) bool {
			return c.Value(requestKey{}) == "request-1"
		})).Return(assets, nil)
		service := newService()

		_, err := service.Load(ctx, "session-1")
		Expect(err).ToNot(HaveOccurred())
	})

	It("reloads the dataset for each session", func() {
		loader.EXPECT().Load(gomock.Any()).Return(assets, nil).Times(2)
		service := newService()

		first, err := service.Load(context.Background(), "session-1")
		Expect(err).ToNot(HaveOccurred())
		second, err := service.Load(context.Background(), "session-2")
		Expect(err).ToNot(HaveOccurred())
		Expect(second).ToNot(BeIdenticalTo(first))
	})

	It("reloads evicted sessions", func() {
		loader.EXPECT().Load(gomock.Any()).Return(assets, nil).Times(2)
		service := newService()

		_, err := service.Get(context.Background(), "session-1")
		Expect(err).ToNot(HaveOccurred())
		service.Evict("session-1")
		_, err = service.Get(context.Background(), "session-1")
		Expect(err).ToNot(HaveOccurred())
	})

	It("reloads expired sessions", func() {
		config.CacheExpiration = -time.Second
		loader.EXPECT().Load(gomock.Any()).Return(assets, nil).Times(2)
		service := newService()

		_, err := service.Get(context.Background(), "session-1")
		Expect(err).ToNot(HaveOccurred())
		_, err = service.Get(context.Background(), "session-1")
		Expect(err).ToNot(HaveOccurred())
	})

	It("returns download errors", func() {
		loader.EXPECT().Load(gomock.Any()).Return(nil, fmt.Errorf("%w: failed to download file from x", errs.BadGateway))
		_, err := newService().Get(context.Background(), "session-1")
		Expect(err).To(MatchError(errs.BadGateway))
	})

	It("returns workbook errors", func() {
		loader.EXPECT().Load(gomock.Any()).Return(&source.Assets{Workbook: []byte("not a workbook")}, nil)
		_, err := newService().Get(context.Background(), "session-1")
		Expect(err).To(MatchError(errs.UnprocessableEntity))
	})
})
