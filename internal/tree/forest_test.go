package tree

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-keeper/models"
)

func ptr(v int64) *int64 { return &v }

func folder(id int64, parent *int64) models.Folder {
	f := models.Folder{FolderID: id, Name: "folder"}
	f.SetParent(parent)
	return f
}

func file(id int64, parent *int64) models.File {
	f := models.File{FileID: id, Name: "file", Size: 10}
	f.SetParent(parent)
	return f
}

// ── Build ──

// TestBuild_Scenario verifies the A -> B -> f1 layout.
func TestBuild_Scenario(t *testing.T) {
	folders := []models.Folder{folder(1, nil), folder(2, ptr(1))}
	files := []models.File{file(10, ptr(2))}

	forest := Build(folders, files)

	require.Len(t, forest, 1)
	a := forest[0]
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, KindFolder, a.Kind)
	require.Len(t, a.Children, 1)

	b := a.Children[0]
	assert.Equal(t, int64(2), b.ID)
	require.Len(t, b.Children, 1)

	f1 := b.Children[0]
	assert.Equal(t, int64(10), f1.ID)
	assert.Equal(t, KindFile, f1.Kind)
	assert.Nil(t, f1.Children)
}

func TestBuild_Empty(t *testing.T) {
	forest := Build(nil, nil)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
}

// TestBuild_SubfoldersBeforeFiles verifies folder children come first.
func TestBuild_SubfoldersBeforeFiles(t *testing.T) {
	folders := []models.Folder{folder(1, nil), folder(3, ptr(1))}
	files := []models.File{file(20, ptr(1)), file(21, nil)}

	forest := Build(folders, files)

	require.Len(t, forest, 2)
	assert.Equal(t, KindFolder, forest[0].Kind)
	assert.Equal(t, KindFile, forest[1].Kind)

	children := forest[0].Children
	require.Len(t, children, 2)
	assert.Equal(t, KindFolder, children[0].Kind)
	assert.Equal(t, KindFile, children[1].Kind)
}

// TestBuild_UnreachableRecordsOmitted verifies orphans and cycles are left
// out instead of looping forever.
func TestBuild_UnreachableRecordsOmitted(t *testing.T) {
	folders := []models.Folder{
		folder(1, nil),
		folder(2, ptr(99)), // parent missing
		folder(3, ptr(4)),  // 3 <-> 4 cycle
		folder(4, ptr(3)),
	}
	files := []models.File{file(10, ptr(2)), file(11, ptr(1))}

	forest := Build(folders, files)

	assert.Equal(t, 2, forest.Count())
	assert.Nil(t, forest.FindFolder(2))
	assert.Nil(t, forest.FindFolder(3))
}

// randomHierarchy produces n folders and m files where every parent id
// refers to an earlier folder, which keeps the parent relation acyclic.
func randomHierarchy(r *rand.Rand, n, m int) ([]models.Folder, []models.File) {
	folders := make([]models.Folder, 0, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		if i == 0 || r.IntN(4) == 0 {
			folders = append(folders, folder(id, nil))
			continue
		}
		folders = append(folders, folder(id, ptr(int64(r.IntN(i)+1))))
	}

	files := make([]models.File, 0, m)
	for i := 0; i < m; i++ {
		id := int64(1000 + i)
		if r.IntN(5) == 0 {
			files = append(files, file(id, nil))
			continue
		}
		files = append(files, file(id, ptr(int64(r.IntN(n)+1))))
	}
	return folders, files
}

// TestBuild_Property verifies node count, parentage and order independence
// over random acyclic inputs.
func TestBuild_Property(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 50; round++ {
		n, m := r.IntN(60)+1, r.IntN(120)
		folders, files := randomHierarchy(r, n, m)

		forest := Build(folders, files)
		require.Equal(t, n+m, forest.Count(), "round %d", round)

		forest.Walk(func(node, parent *Node) bool {
			if parent == nil {
				assert.Nil(t, node.ParentFolder)
			} else {
				require.NotNil(t, node.ParentFolder)
				assert.Equal(t, parent.ID, *node.ParentFolder)
				assert.True(t, parent.IsFolder())
			}
			return true
		})

		r.Shuffle(len(folders), func(i, j int) { folders[i], folders[j] = folders[j], folders[i] })
		r.Shuffle(len(files), func(i, j int) { files[i], files[j] = files[j], files[i] })
		assert.Equal(t, n+m, Build(folders, files).Count(), "round %d shuffled", round)
	}
}

// ── Incremental edits ──

func TestInsert(t *testing.T) {
	forest := Build([]models.Folder{folder(1, nil)}, nil)

	assert.Equal(t, Inserted, forest.InsertFolder(folder(2, ptr(1))))
	assert.Equal(t, Inserted, forest.InsertFile(file(10, ptr(2))))
	assert.Equal(t, Inserted, forest.InsertFile(file(11, nil)))

	assert.Equal(t, 4, forest.Count())
	require.NotNil(t, forest.FindFolder(2))
	assert.Len(t, forest.FindFolder(2).Children, 1)
	assert.Len(t, forest, 2)
}

// TestInsert_ParentNotFound verifies a missing parent is reported and the
// forest is left untouched.
func TestInsert_ParentNotFound(t *testing.T) {
	forest := Build([]models.Folder{folder(1, nil)}, nil)

	res := forest.InsertFile(file(10, ptr(42)))
	assert.Equal(t, ParentNotFound, res)
	assert.Equal(t, "parent not found", res.String())

	assert.Equal(t, ParentNotFound, forest.InsertFolder(folder(2, ptr(42))))
	assert.Equal(t, 1, forest.Count())
}

func TestInsert_FileIsNotAParent(t *testing.T) {
	forest := Build(nil, []models.File{file(5, nil)})

	// A file with the same id as the requested parent must not be chosen.
	assert.Equal(t, ParentNotFound, forest.InsertFile(file(6, ptr(5))))
}

func TestRemove(t *testing.T) {
	folders := []models.Folder{folder(1, nil), folder(2, ptr(1)), folder(3, nil)}
	files := []models.File{file(10, ptr(2)), file(11, ptr(1)), file(12, nil)}
	forest := Build(folders, files)
	require.Equal(t, 6, forest.Count())

	assert.True(t, forest.RemoveFile(file(11, ptr(1))))
	assert.Equal(t, 5, forest.Count())

	// Removing a folder drops its subtree.
	assert.True(t, forest.RemoveFolder(folder(2, ptr(1))))
	assert.Equal(t, 3, forest.Count())

	assert.True(t, forest.RemoveFile(file(12, nil)))
	assert.True(t, forest.RemoveFolder(folder(3, nil)))
	assert.Equal(t, 1, forest.Count())
}

func TestRemove_NoOp(t *testing.T) {
	forest := Build([]models.Folder{folder(1, nil)}, []models.File{file(10, ptr(1))})

	assert.False(t, forest.RemoveFile(file(10, ptr(77))))
	assert.False(t, forest.RemoveFile(file(99, ptr(1))))
	assert.False(t, forest.RemoveFolder(folder(5, nil)))
	assert.Equal(t, 2, forest.Count())
}

func TestWalk_StopsEarly(t *testing.T) {
	forest := Build([]models.Folder{folder(1, nil), folder(2, nil)}, nil)

	visited := 0
	forest.Walk(func(*Node, *Node) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

// ── JSON ──

func TestForest_JSONChildren(t *testing.T) {
	forest := Build([]models.Folder{folder(1, nil), folder(2, ptr(1))}, []models.File{file(10, ptr(1))})

	raw, err := json.Marshal(forest)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)

	children, ok := decoded[0]["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 2)

	empty := children[0].(map[string]any)
	assert.Equal(t, "folder", empty["kind"])
	assert.Equal(t, []any{}, empty["children"])

	leaf := children[1].(map[string]any)
	assert.Equal(t, "file", leaf["kind"])
	assert.NotContains(t, leaf, "children")
}

func TestNode_JSONNilChildren(t *testing.T) {
	raw, err := json.Marshal(&Node{ID: 7, Name: "bare", Kind: KindFolder})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"children":[]`)

	var back Node
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, int64(7), back.ID)
	assert.Equal(t, KindFolder, back.Kind)
	assert.Empty(t, back.Children)
}
