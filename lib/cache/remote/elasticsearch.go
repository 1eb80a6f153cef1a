package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/elastic/go-elasticsearch/v7"
	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/cache"
)

type ElasticsearchConfig struct {
	Host  string
	Port  int
	Index string
}

type esGetResponse struct {
	ID     string          `json:"_id"`
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

func NewElasticsearchClient(conf ElasticsearchConfig) (cache.Client, error) {
	return newElasticsearchClient(elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%d", conf.Host, conf.Port)},
	}, conf.Index)
}

func newElasticsearchClient(conf elasticsearch.Config, index string) (*esClient, error) {
	c, err := elasticsearch.NewClient(conf)
	if err != nil {
		return nil, err
	}
	return &esClient{
		Client: c,
		index:  index,
	}, nil
}

// esClient keeps one document per cache key, using the key as document id.
type esClient struct {
	*elasticsearch.Client
	index string
}

func (e *esClient) Ready() bool {
	res, err := e.Info()
	if err != nil || res.StatusCode != 200 {
		return false
	}
	return true
}

func (e *esClient) Get(key string) (*cache.Entry, error) {
	res, err := e.Client.Get(e.index, key)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	} else if res.IsError() {
		return nil, errors.New(res.String())
	}

	b, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	var doc esGetResponse
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if !doc.Found {
		return nil, nil
	}
	return decode(doc.Source)
}

func (e *esClient) Set(key string, entry *cache.Entry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	res, err := e.Index(e.index, bytes.NewReader(b), e.Index.WithDocumentID(key))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return errors.New(res.String())
	}
	return nil
}
