package host_test

import (
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/cloudfoundry/bundle-agent/host"
)

var _ = Describe("Installations", func() {
	mustInstallation := func(version, location string) Installation {
		installation, err := NewInstallation(version, location)
		Expect(err).ToNot(HaveOccurred())
		return installation
	}

	var installations Installations

	BeforeEach(func() {
		installations = Installations{
			mustInstallation("2024", "/opt/Revit 2024"),
			mustInstallation("2021", "/opt/Revit 2021"),
			mustInstallation("2023", "/opt/Revit 2023"),
		}
	})

	It("rejects versions that cannot be parsed", func() {
		_, err := NewInstallation("latest", "/opt/Revit")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Parsing version 'latest'"))
	})

	It("knows where its executable is", func() {
		Expect(installations[0].Executable("Revit.exe")).To(Equal(filepath.Join("/opt/Revit 2024", "Revit.exe")))
	})

	It("sorts from oldest to newest without touching the receiver", func() {
		sorted := installations.Sorted()
		Expect(sorted[0].InstallLocation).To(Equal("/opt/Revit 2021"))
		Expect(sorted[1].InstallLocation).To(Equal("/opt/Revit 2023"))
		Expect(sorted[2].InstallLocation).To(Equal("/opt/Revit 2024"))

		Expect(installations[0].InstallLocation).To(Equal("/opt/Revit 2024"))
	})

	Describe("Find", func() {
		It("finds the exact version", func() {
			installation, found := installations.Find(semver.MustParse("2023"))
			Expect(found).To(BeTrue())
			Expect(installation.InstallLocation).To(Equal("/opt/Revit 2023"))
		})

		It("does not fall back to another version", func() {
			_, found := installations.Find(semver.MustParse("2022"))
			Expect(found).To(BeFalse())
		})
	})

	Describe("FindAtLeast", func() {
		It("returns the oldest qualifying installation of a sorted list", func() {
			installation, found := installations.Sorted().FindAtLeast(semver.MustParse("2022"))
			Expect(found).To(BeTrue())
			Expect(installation.InstallLocation).To(Equal("/opt/Revit 2023"))
		})

		It("accepts the exact version", func() {
			installation, found := installations.Sorted().FindAtLeast(semver.MustParse("2021"))
			Expect(found).To(BeTrue())
			Expect(installation.InstallLocation).To(Equal("/opt/Revit 2021"))
		})

		It("finds nothing when every installation is older", func() {
			_, found := installations.FindAtLeast(semver.MustParse("2025"))
			Expect(found).To(BeFalse())
		})
	})

	It("filters by constraint", func() {
		constraints, err := semver.NewConstraint(">= 2022, < 2024")
		Expect(err).ToNot(HaveOccurred())

		matching := installations.Matching(constraints)
		Expect(matching).To(HaveLen(1))
		Expect(matching[0].InstallLocation).To(Equal("/opt/Revit 2023"))
	})
})
