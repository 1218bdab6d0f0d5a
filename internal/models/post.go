package models

// Post is one row of the post_text_df table.
type Post struct {
	ID    int64  `db:"post_id"`
	Text  string `db:"text"`
	Topic string `db:"topic"`
}

// ClusterCount is the number of text clusters the upstream pipeline fits;
// each post carries its distance to every centroid.
const ClusterCount = 15

// PostFeatures is one row of the post_clustering_features table: the static
// model inputs derived from a post's text.
type PostFeatures struct {
	PostID           int64                `db:"post_id"`
	Topic            string               `db:"topic"`
	TextCluster      int                  `db:"text_cluster"`
	ClusterDistances [ClusterCount]float64
}
