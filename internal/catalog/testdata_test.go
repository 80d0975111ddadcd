package catalog

const sampleCatalogue = `
plants:
  - id: pressworks
    name: Pressworks Ltd
    rating: 4.6
    turnaround_weeks: 8
    location: Leeds, UK
    vinyl:
      - size: "12"
        format: 1LP
        tiers:
          - {min: 100, price: "3.00"}
          - {min: 500, price: "2.50"}
          - {min: 1000, price: 2.00}
    colours:
      splatter: "0.45"
    weights:
      180gm: "0.20"
    packaging:
      - type: inner sleeve
        option: white paper
        tiers: [{min: 100, price: "0.10"}]
      - type: jacket
        option: full colour
        tiers: [{min: 100, price: "1.10"}]
      - type: jacket
        option: gatefold
        locked: true
        tiers: [{min: 100, price: "2.40"}]
      - type: inserts
        option: no insert
        tiers: [{min: 100, price: "0"}]
      - type: shrink_wrap
        option: "no"
        tiers: [{min: 100, price: "0"}]
`
