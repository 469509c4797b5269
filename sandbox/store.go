package sandbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/docfold/docfold-go"
)

var (
	bucketTemplates = []byte("templates")
	bucketStyles    = []byte("styles")
	bucketImages    = []byte("images")
	bucketFiles     = []byte("files")
)

// Blob key prefixes in the files bucket.
const (
	blobTemplate = "tpl:"
	blobHeader   = "hdr:"
	blobFooter   = "ftr:"
	blobStyle    = "css:"
	blobImage    = "img:"
	blobOutput   = "out:"
)

var errNotFound = errors.New("not found")

// store persists sandbox templates, their resources and file blobs.
type store struct {
	db *bolt.DB
}

func newStore(path string) (*store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketTemplates, bucketStyles, bucketImages, bucketFiles} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sandbox buckets: %w", err)
	}
	return &store{db: db}, nil
}

func (st *store) Close() error {
	return st.db.Close()
}

// CreateTemplate assigns identity to the template, stores its files and
// returns the stored value.
func (st *store) CreateTemplate(tmpl *docfold.Template, main, header, footer []byte, mainName, headerName, footerName string) error {
	tmpl.ID = uuid.New().String()
	now := time.Now().UTC()
	tmpl.Timestamp = &now
	tmpl.MainFile = &docfold.TemplateFile{Filename: mainName, Format: tmpl.Format}
	if header != nil {
		tmpl.HeaderFile = &docfold.TemplateFile{Filename: headerName, Format: tmpl.Format}
	}
	if footer != nil {
		tmpl.FooterFile = &docfold.TemplateFile{Filename: footerName, Format: tmpl.Format}
	}

	return st.db.Update(func(tx *bolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		if err := files.Put([]byte(blobTemplate+tmpl.ID), main); err != nil {
			return err
		}
		if header != nil {
			if err := files.Put([]byte(blobHeader+tmpl.ID), header); err != nil {
				return err
			}
		}
		if footer != nil {
			if err := files.Put([]byte(blobFooter+tmpl.ID), footer); err != nil {
				return err
			}
		}

		data, err := json.Marshal(tmpl)
		if err != nil {
			return fmt.Errorf("failed to marshal template: %w", err)
		}
		return tx.Bucket(bucketTemplates).Put([]byte(tmpl.ID), data)
	})
}

// Template retrieves a template by ID, nil when missing.
func (st *store) Template(id string) (*docfold.Template, error) {
	var tmpl *docfold.Template

	err := st.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketTemplates).Get([]byte(id))
		if data == nil {
			return nil
		}
		tmpl = &docfold.Template{}
		return json.Unmarshal(data, tmpl)
	})

	return tmpl, err
}

// Templates returns all stored templates.
func (st *store) Templates() ([]docfold.Template, error) {
	templates := []docfold.Template{}

	err := st.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketTemplates).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var tmpl docfold.Template
			if err := json.Unmarshal(v, &tmpl); err != nil {
				continue
			}
			templates = append(templates, tmpl)
		}
		return nil
	})

	return templates, err
}

// DeleteTemplate removes a template, its resources and all their files. It
// reports whether the template existed.
func (st *store) DeleteTemplate(id string) (bool, error) {
	found := false

	err := st.db.Update(func(tx *bolt.Tx) error {
		templates := tx.Bucket(bucketTemplates)
		data := templates.Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true

		var tmpl docfold.Template
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return err
		}

		files := tx.Bucket(bucketFiles)
		styles := tx.Bucket(bucketStyles)
		images := tx.Bucket(bucketImages)

		for _, s := range tmpl.Styles {
			if err := styles.Delete([]byte(s.ID)); err != nil {
				return err
			}
			if err := files.Delete([]byte(blobStyle + s.ID)); err != nil {
				return err
			}
		}
		for _, img := range tmpl.Images {
			if err := images.Delete([]byte(img.ID)); err != nil {
				return err
			}
			if err := files.Delete([]byte(blobImage + img.ID)); err != nil {
				return err
			}
		}
		for _, key := range []string{blobTemplate + id, blobHeader + id, blobFooter + id} {
			if err := files.Delete([]byte(key)); err != nil {
				return err
			}
		}

		return templates.Delete([]byte(id))
	})

	return found, err
}

// AddStyle assigns identity to the style, stores its file and links it to
// the owning template.
func (st *store) AddStyle(templateID string, style *docfold.StyleFile, content []byte) error {
	style.ID = uuid.New().String()
	style.TemplateID = templateID
	now := time.Now().UTC()
	style.Timestamp = &now

	return st.db.Update(func(tx *bolt.Tx) error {
		templates := tx.Bucket(bucketTemplates)
		data := templates.Get([]byte(templateID))
		if data == nil {
			return errNotFound
		}
		var tmpl docfold.Template
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return err
		}
		tmpl.Styles = append(tmpl.Styles, *style)

		updated, err := json.Marshal(&tmpl)
		if err != nil {
			return err
		}
		if err := templates.Put([]byte(templateID), updated); err != nil {
			return err
		}

		record, err := json.Marshal(style)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketStyles).Put([]byte(style.ID), record); err != nil {
			return err
		}
		return tx.Bucket(bucketFiles).Put([]byte(blobStyle+style.ID), content)
	})
}

// DeleteStyle removes a style resource by its own ID and unlinks it from its
// template. It reports whether the style existed.
func (st *store) DeleteStyle(id string) (bool, error) {
	found := false

	err := st.db.Update(func(tx *bolt.Tx) error {
		styles := tx.Bucket(bucketStyles)
		data := styles.Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true

		var style docfold.StyleFile
		if err := json.Unmarshal(data, &style); err != nil {
			return err
		}

		templates := tx.Bucket(bucketTemplates)
		if tdata := templates.Get([]byte(style.TemplateID)); tdata != nil {
			var tmpl docfold.Template
			if err := json.Unmarshal(tdata, &tmpl); err != nil {
				return err
			}
			kept := tmpl.Styles[:0]
			for _, s := range tmpl.Styles {
				if s.ID != id {
					kept = append(kept, s)
				}
			}
			tmpl.Styles = kept
			updated, err := json.Marshal(&tmpl)
			if err != nil {
				return err
			}
			if err := templates.Put([]byte(style.TemplateID), updated); err != nil {
				return err
			}
		}

		if err := tx.Bucket(bucketFiles).Delete([]byte(blobStyle + id)); err != nil {
			return err
		}
		return styles.Delete([]byte(id))
	})

	return found, err
}

// AddImage assigns identity to the image resource, stores its file and links
// it to the owning template.
func (st *store) AddImage(templateID string, img *docfold.ImageFile, content []byte) error {
	img.ID = uuid.New().String()
	img.TemplateID = templateID
	now := time.Now().UTC()
	img.Timestamp = &now

	return st.db.Update(func(tx *bolt.Tx) error {
		templates := tx.Bucket(bucketTemplates)
		data := templates.Get([]byte(templateID))
		if data == nil {
			return errNotFound
		}
		var tmpl docfold.Template
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return err
		}
		tmpl.Images = append(tmpl.Images, *img)

		updated, err := json.Marshal(&tmpl)
		if err != nil {
			return err
		}
		if err := templates.Put([]byte(templateID), updated); err != nil {
			return err
		}

		record, err := json.Marshal(img)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketImages).Put([]byte(img.ID), record); err != nil {
			return err
		}
		return tx.Bucket(bucketFiles).Put([]byte(blobImage+img.ID), content)
	})
}

// DeleteImage removes an image resource by its own ID and unlinks it from
// its template. It reports whether the image existed.
func (st *store) DeleteImage(id string) (bool, error) {
	found := false

	err := st.db.Update(func(tx *bolt.Tx) error {
		images := tx.Bucket(bucketImages)
		data := images.Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true

		var img docfold.ImageFile
		if err := json.Unmarshal(data, &img); err != nil {
			return err
		}

		templates := tx.Bucket(bucketTemplates)
		if tdata := templates.Get([]byte(img.TemplateID)); tdata != nil {
			var tmpl docfold.Template
			if err := json.Unmarshal(tdata, &tmpl); err != nil {
				return err
			}
			kept := tmpl.Images[:0]
			for _, i := range tmpl.Images {
				if i.ID != id {
					kept = append(kept, i)
				}
			}
			tmpl.Images = kept
			updated, err := json.Marshal(&tmpl)
			if err != nil {
				return err
			}
			if err := templates.Put([]byte(img.TemplateID), updated); err != nil {
				return err
			}
		}

		if err := tx.Bucket(bucketFiles).Delete([]byte(blobImage + id)); err != nil {
			return err
		}
		return images.Delete([]byte(id))
	})

	return found, err
}

// PutBlob stores raw file content under a prefixed key.
func (st *store) PutBlob(key string, data []byte) error {
	return st.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFiles).Put([]byte(key), data)
	})
}

// Blob retrieves raw file content, nil when missing.
func (st *store) Blob(key string) ([]byte, error) {
	var data []byte

	err := st.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketFiles).Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})

	return data, err
}
