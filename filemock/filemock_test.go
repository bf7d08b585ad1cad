package filemock_test

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	. "github.com/onsi/gomega"
	"github.com/toejough/mockable"
	"github.com/toejough/mockable/filemock"
	"github.com/toejough/mockable/match"
)

var errExpected = errors.New("expected")

func TestMock_FileExists(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := "Mocking 💪"
	fileManager := filemock.NewMock(memfs.New())
	fileManager.Exists.Override(func(string) bool { return true })

	g.Expect(fileManager.FileExists(path)).To(BeTrue())
	g.Expect(fileManager.Exists.WasCalledWith(path)).To(BeTrue())
	g.Expect(fileManager.Exists.WasCalled()).To(BeTrue())
}

func TestMock_FileExists_DefaultsToFilesystem(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	filesystem := memfs.New()
	writeFile(t, filesystem, "present.txt", "x")

	fileManager := filemock.NewMock(filesystem)

	g.Expect(fileManager.FileExists("present.txt")).To(BeTrue())
	g.Expect(fileManager.FileExists("absent.txt")).To(BeFalse())
	g.Expect(fileManager.Exists).To(match.HaveBeenCalledTimes(2))
}

func TestMock_RemoveItem_Throws(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileManager := filemock.NewMock(memfs.New())
	fileManager.Remove.Fails(errExpected)

	err := fileManager.RemoveItem("any")

	g.Expect(err).To(MatchError(errExpected))
	g.Expect(fileManager.Remove.WasCalled()).To(BeTrue())
	g.Expect(fileManager.Remove.Errors()).To(Equal([]error{errExpected}))
}

func TestMock_CopyItem_RecordsTuple(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileManager := filemock.NewMock(memfs.New())
	fileManager.Copy.Returns(struct{}{})

	g.Expect(fileManager.CopyItem("source", "destination")).To(Succeed())

	g.Expect(fileManager.Copy.WasCalledWith(mockable.NewTuple("source", "destination"))).To(BeTrue())
	g.Expect(mockable.WasCalledWithInput(fileManager.Copy.Usage(), "destination")).To(BeTrue())
}

func TestMock_CopyItem_DefaultCopies(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	filesystem := memfs.New()
	writeFile(t, filesystem, "source", "payload")

	fileManager := filemock.NewMock(filesystem)

	g.Expect(fileManager.CopyItem("source", "destination")).To(Succeed())
	g.Expect(readFile(t, filesystem, "destination")).To(Equal("payload"))

	err := fileManager.CopyItem("missing", "elsewhere")
	g.Expect(err).To(MatchError(fs.ErrNotExist))
	g.Expect(fileManager.Copy.Errors()).To(HaveLen(1))
}

func TestMock_ContentsOfDirectory_Overridden(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileManager := filemock.NewMock(memfs.New())
	fileManager.Contents.Returns([]string{"success"})

	result, err := fileManager.ContentsOfDirectory("", false, 0)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal([]string{"success"}))
	g.Expect(fileManager.Contents.WasCalled()).To(BeTrue())
	g.Expect(mockable.WasCalledWithValue(fileManager.Contents.Usage(), "")).To(BeTrue())
	g.Expect(mockable.InputDescriptions(fileManager.Contents.Usage())).To(Equal([][]string{{"", "false", "0"}}))
}

func TestMock_ContentsOfDirectory_DefaultLists(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	filesystem := memfs.New()
	g.Expect(filesystem.MkdirAll("docs", 0o755)).To(Succeed())
	writeFile(t, filesystem, "docs/b.txt", "b")
	writeFile(t, filesystem, "docs/a.txt", "a")
	writeFile(t, filesystem, "docs/.hidden", "h")

	fileManager := filemock.NewMock(filesystem)

	visible, err := fileManager.ContentsOfDirectory("docs", false, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(visible).To(Equal([]string{filesystem.Join("docs", "a.txt"), filesystem.Join("docs", "b.txt")}))

	limited, err := fileManager.ContentsOfDirectory("docs", true, 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(limited).To(Equal([]string{filesystem.Join("docs", ".hidden")}))

	found, err := mockable.WasCalledWithValue(fileManager.Contents.Usage(), 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(found).To(BeTrue())

	_, err = fileManager.ContentsOfDirectory("nowhere", false, 0)
	g.Expect(err).To(HaveOccurred())
	g.Expect(fileManager.Contents.Errors()).To(HaveLen(1))
}

func TestMock_ContentsOfDirectoryAtPath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileManager := filemock.NewMock(memfs.New())
	fileManager.ContentsAtPath.Returns([]string{"success"})

	result, err := fileManager.ContentsOfDirectoryAtPath("/some/path")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal([]string{"success"}))
	g.Expect(fileManager.ContentsAtPath).To(match.HaveBeenCalledWith("/some/path"))
}

func TestMock_CreateDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	filesystem := memfs.New()
	fileManager := filemock.NewMock(filesystem)

	g.Expect(fileManager.CreateDirectory("tmp/sub", false, 0o777)).To(MatchError(fs.ErrNotExist))
	g.Expect(fileManager.CreateDirectory("tmp/sub", true, 0o777)).To(Succeed())
	g.Expect(fileManager.CreateDirectory("tmp/sub", false, 0o777)).To(MatchError(fs.ErrExist))
	g.Expect(fileManager.FileExists("tmp/sub")).To(BeTrue())

	g.Expect(fileManager.CreateDir).To(match.HaveBeenCalledTimes(3))
	g.Expect(mockable.WasCalledWithValue(fileManager.CreateDir.Usage(), true)).To(BeTrue())

	fileManager.CreateDir.Returns(struct{}{})
	g.Expect(fileManager.CreateDirectory("tmp/other", false, 0o700)).To(Succeed())
	g.Expect(fileManager.FileExists("tmp/other")).To(BeFalse())
}

func TestMock_Reset(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	filesystem := memfs.New()
	fileManager := filemock.NewMock(filesystem)

	t.Run("overrides", func(t *testing.T) {
		g := NewWithT(t)

		mockable.ResetOnCleanup(t, fileManager)
		fileManager.Exists.Returns(true)
		fileManager.Remove.Fails(errExpected)
		g.Expect(fileManager.FileExists("ghost")).To(BeTrue())
	})

	g.Expect(fileManager.Exists.IsOverridden()).To(BeFalse())
	g.Expect(fileManager.Remove.IsOverridden()).To(BeFalse())
	g.Expect(fileManager.FileExists("ghost")).To(BeFalse())
	g.Expect(fileManager.Exists.CallCount()).To(Equal(2))
}

func TestMock_HoldersAreNamed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fileManager := filemock.NewMock(memfs.New())

	g.Expect(fileManager.Exists.Name()).To(Equal("FileExists"))
	g.Expect(fileManager.Contents.Name()).To(Equal("ContentsOfDirectory"))
}

func readFile(t *testing.T, filesystem billy.Filesystem, name string) string {
	t.Helper()

	file, err := filesystem.Open(name)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}

	return string(data)
}

func writeFile(t *testing.T, filesystem billy.Filesystem, name, contents string) {
	t.Helper()

	file, err := filesystem.Create(name)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}

	if _, err := file.Write([]byte(contents)); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	if err := file.Close(); err != nil {
		t.Fatalf("close %s: %v", name, err)
	}
}
